package sink

import (
	"fmt"
	"strings"

	"github.com/gridshift-org/gridshift/engine"
)

// ============================================================================
// QUERY — serving-collaborator read contract
// ============================================================================
// Range filters on Year (gte/lte), equality/set filters on Region and the
// categorical columns, offset/limit pagination. Rows come back in the same
// defined order the tables are written in, so paging is stable.
// ============================================================================

// QueryFilter selects indicator rows. Zero values mean no restriction.
type QueryFilter struct {
	MetricID      string
	OutputName    string
	YearGTE       int
	YearLTE       int
	Regions       []string
	Categories    []string
	SubCategories []string
	FuelTypes     []string
	Limit         int
	Offset        int
}

// IndicatorRow is one stored output row with its metric identity.
type IndicatorRow struct {
	MetricID   string
	OutputName string
	engine.Row
}

// Query returns the indicator rows matching the filter.
func (s *Store) Query(f QueryFilter) ([]IndicatorRow, error) {
	var (
		where []string
		args  []interface{}
	)
	eq := func(col, val string) {
		if val != "" {
			where = append(where, col+" = ?")
			args = append(args, val)
		}
	}
	in := func(col string, vals []string) {
		if len(vals) == 0 {
			return
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(vals)), ", ")
		where = append(where, col+" IN ("+marks+")")
		for _, v := range vals {
			args = append(args, v)
		}
	}

	eq("metric_id", f.MetricID)
	eq("output_name", f.OutputName)
	if f.YearGTE != 0 {
		where = append(where, "year >= ?")
		args = append(args, f.YearGTE)
	}
	if f.YearLTE != 0 {
		where = append(where, "year <= ?")
		args = append(args, f.YearLTE)
	}
	in("region", f.Regions)
	in("category", f.Categories)
	in("sub_category", f.SubCategories)
	in("fuel_type", f.FuelTypes)

	query := "SELECT metric_id, output_name, year, month, region, metric_group, category, sub_category, fuel_type, value " +
		"FROM indicator_values"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY year, month, region, category, sub_category, fuel_type"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	} else if f.Offset > 0 {
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	var out []IndicatorRow
	for rows.Next() {
		var r IndicatorRow
		if err := rows.Scan(
			&r.MetricID, &r.OutputName,
			&r.Year, &r.Month, &r.Region, &r.MetricGroup,
			&r.Category, &r.SubCategory, &r.FuelType, &r.Value,
		); err != nil {
			return nil, fmt.Errorf("query indicators: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
