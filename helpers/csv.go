// Package helpers converts between the engine's in-memory records and the
// flat CSV tables the upstream clean/extract stage and downstream serving
// stage exchange.
package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gridshift-org/gridshift/engine"
)

// ============================================================================
// CSV INPUT — cleaned flat table → []engine.Record
// ============================================================================
// The input contract fixes column naming per source domain. Known
// categorical columns stay dimensions even when their values look numeric
// (Year, Month, the renewable and boiler flags); every other column is a
// measure if it parses as a number, a dimension otherwise. Each record also
// gets the synthetic row counter for count aggregations.
// ============================================================================

// dimensionColumns are always dimensions regardless of value shape.
var dimensionColumns = map[string]bool{
	engine.DimYear:        true,
	engine.DimMonth:       true,
	engine.DimRegion:      true,
	engine.DimDistrict:    true,
	engine.DimCategory:    true,
	engine.DimSubCategory: true,
	engine.DimFuelType:    true,
	engine.DimCondition:   true,
	"Type":                true,
	"FossilFuelFlag":      true,
	"BoilerFlag":          true,
	"Metric_Group":        true,
}

// ParseCSV parses a cleaned flat table into engine records. Malformed data
// rows are skipped; a missing or empty header is an error.
func ParseCSV(r io.Reader) ([]engine.Record, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV headers: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var records []engine.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}
		for i, val := range row {
			if i >= len(headers) {
				break
			}
			val = strings.TrimSpace(val)
			key := headers[i]

			if dimensionColumns[key] {
				rec.Dimensions[key] = val
				continue
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				rec.Measures[key] = f
			} else {
				rec.Dimensions[key] = val
			}
		}
		rec.Measures[engine.MeasureRecordCount] = 1
		records = append(records, rec)
	}

	return records, nil
}

// ParseCSVView parses a cleaned flat table directly into a RecordView.
func ParseCSVView(r io.Reader) (engine.RecordView, error) {
	records, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(records), nil
}

// ============================================================================
// CSV OUTPUT — engine.Table → stable-schema artifact
// ============================================================================

// WriteCSV writes a metric output table in its stable column order. Integral
// values (counts) are written without a decimal point; derived values keep
// full precision, so identical runs produce byte-identical files.
func WriteCSV(w io.Writer, t *engine.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Month),
			row.Region,
			row.MetricGroup,
			row.Category,
			row.SubCategory,
			row.FuelType,
			FormatValue(row.Value),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatValue renders a metric value deterministically: integers without a
// decimal point, everything else with the shortest round-trip float form.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
