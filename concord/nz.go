package concord

// DefaultNZ returns the built-in concordance from New Zealand territorial
// authorities (the district labels the vehicle register and gas-connection
// extracts carry) to the sixteen regions plus the Chatham Islands. Lookup is
// suffix-insensitive, so "Thames-Coromandel District" and "Thames-Coromandel"
// both resolve to "Waikato".
func DefaultNZ() Map {
	return Map{
		// Northland
		"Far North": "Northland",
		"Whangarei": "Northland",
		"Kaipara":   "Northland",
		// Auckland
		"Auckland": "Auckland",
		// Waikato
		"Thames-Coromandel": "Waikato",
		"Hauraki":           "Waikato",
		"Waikato":           "Waikato",
		"Matamata-Piako":    "Waikato",
		"Hamilton":          "Waikato",
		"Waipa":             "Waikato",
		"Otorohanga":        "Waikato",
		"South Waikato":     "Waikato",
		"Waitomo":           "Waikato",
		"Taupo":             "Waikato",
		// Bay of Plenty
		"Western Bay of Plenty": "Bay of Plenty",
		"Tauranga":              "Bay of Plenty",
		"Rotorua":               "Bay of Plenty",
		"Whakatane":             "Bay of Plenty",
		"Kawerau":               "Bay of Plenty",
		"Opotiki":               "Bay of Plenty",
		// Gisborne
		"Gisborne": "Gisborne",
		// Hawke's Bay
		"Wairoa":              "Hawke's Bay",
		"Hastings":            "Hawke's Bay",
		"Napier":              "Hawke's Bay",
		"Central Hawke's Bay": "Hawke's Bay",
		// Taranaki
		"New Plymouth":   "Taranaki",
		"Stratford":      "Taranaki",
		"South Taranaki": "Taranaki",
		// Manawatu-Whanganui
		"Ruapehu":          "Manawatu-Whanganui",
		"Whanganui":        "Manawatu-Whanganui",
		"Rangitikei":       "Manawatu-Whanganui",
		"Manawatu":         "Manawatu-Whanganui",
		"Palmerston North": "Manawatu-Whanganui",
		"Tararua":          "Manawatu-Whanganui",
		"Horowhenua":       "Manawatu-Whanganui",
		// Wellington
		"Kapiti Coast":    "Wellington",
		"Porirua":         "Wellington",
		"Upper Hutt":      "Wellington",
		"Lower Hutt":      "Wellington",
		"Hutt":            "Wellington",
		"Wellington":      "Wellington",
		"Masterton":       "Wellington",
		"Carterton":       "Wellington",
		"South Wairarapa": "Wellington",
		// Top of the south
		"Tasman":      "Tasman",
		"Nelson":      "Nelson",
		"Marlborough": "Marlborough",
		// West Coast
		"Buller":   "West Coast",
		"Grey":     "West Coast",
		"Westland": "West Coast",
		// Canterbury
		"Kaikoura":     "Canterbury",
		"Hurunui":      "Canterbury",
		"Waimakariri":  "Canterbury",
		"Christchurch": "Canterbury",
		"Selwyn":       "Canterbury",
		"Ashburton":    "Canterbury",
		"Timaru":       "Canterbury",
		"Mackenzie":    "Canterbury",
		"Waimate":      "Canterbury",
		// Otago
		"Waitaki":          "Otago",
		"Central Otago":    "Otago",
		"Queenstown-Lakes": "Otago",
		"Dunedin":          "Otago",
		"Clutha":           "Otago",
		// Southland
		"Southland":    "Southland",
		"Gore":         "Southland",
		"Invercargill": "Southland",
		// Offshore
		"Chatham Islands": "Chatham Islands",
	}
}
