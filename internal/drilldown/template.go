// Package drilldown expands a selected chart row into the SQL query
// that fetches its source rows. Templates come from the chart payload
// and use {{name}} placeholders; substitution is plain text, with SQL
// string escaping applied per value.
package drilldown

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

var (
	// ErrNoTemplate means the payload carries no usable drill-down query.
	ErrNoTemplate = errors.New("no drill-down template configured")
	// ErrNoRow means the selected row is out of range for the payload.
	ErrNoRow = errors.New("selected row out of range")
)

// BuildQuery renders the drill-down query for one row. Placeholders are
// resolved in a fixed order: {{database}}, then {{x}} and {{y}} from the
// row's axis cells, then every param_mapping entry bound to a column of
// the row. Placeholders that resolve to nothing, and mappings naming
// columns the payload does not have, are left untouched so the rendered
// query shows what went unresolved.
func BuildQuery(d *chart.Data, row int) (string, error) {
	if d == nil || d.DrillDown == nil || strings.TrimSpace(d.DrillDown.QueryTemplate) == "" {
		return "", ErrNoTemplate
	}
	if row < 0 || row >= len(d.Rows) {
		return "", ErrNoRow
	}

	q := d.DrillDown.QueryTemplate
	q = strings.ReplaceAll(q, "{{database}}", d.Database)

	cells := d.Rows[row]
	q = strings.ReplaceAll(q, "{{x}}", literalAt(cells, d.XIndex()))
	q = strings.ReplaceAll(q, "{{y}}", literalAt(cells, d.YIndex()))

	for placeholder, column := range d.DrillDown.ParamMapping {
		pos := columnIndex(d.Columns, column)
		if pos < 0 || pos >= len(cells) {
			continue
		}
		q = strings.ReplaceAll(q, "{{"+placeholder+"}}", Literal(cells[pos]))
	}
	return q, nil
}

// Literal renders a cell for interpolation into SQL text. Strings double
// embedded single quotes (the template supplies its own outer quotes),
// nil becomes a bare NULL, numbers and bools render unquoted, and JSON
// containers render as their JSON text stripped of outer double quotes.
func Literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return strings.ReplaceAll(t, "'", "''")
	case float64, bool:
		return chart.ToString(t)
	default:
		return strings.Trim(chart.ToString(t), `"`)
	}
}

func literalAt(cells []any, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return Literal(cells[idx])
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
