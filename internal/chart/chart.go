// Package chart defines the chart payload model shared by the watcher,
// the terminal UI, and the drill-down pipeline. Payloads are produced by
// an external analysis process as JSON files; this package owns decoding,
// load-time normalization, and the accessors the views rely on.
package chart

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// DefaultMaxRows is the row cap applied at load time. Producers may emit
// more; everything past the cap is dropped and recorded in TruncatedFrom.
const DefaultMaxRows = 50

// Kind is the resolved chart rendering style.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
)

// Data is one chart payload.
type Data struct {
	// Title is the human-readable chart caption.
	Title string `json:"title"`
	// Database names the catalog the source query ran against.
	Database string `json:"database"`
	// Query is the SQL text that produced Rows, shown on the Query tab.
	Query string `json:"query"`
	// ChartType is the producer's requested style (bar, line, scatter).
	// Empty means infer from the data; see Kind.
	ChartType string `json:"chart_type"`
	// XField and YField name the label and value columns. When they do
	// not match any column, positional defaults apply; see XIndex, YIndex.
	XField string `json:"x_field"`
	YField string `json:"y_field"`
	// Columns and Rows carry the result grid. Cells are nil, bool,
	// float64, string, or raw JSON containers; see ToString and ToFloat.
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	// Timestamp is unix milliseconds; zero values are stamped at load.
	Timestamp int64 `json:"timestamp"`
	// Status is producer-reported ("ok", "truncated", ...). Normalize
	// sets it to "truncated" when it caps Rows.
	Status string `json:"status"`
	// TruncatedFrom is the pre-cap row count, zero when not truncated.
	TruncatedFrom int `json:"truncated_from"`
	// DrillDown configures row-level source queries; nil disables them.
	DrillDown *DrillDown `json:"drill_down"`
}

// DrillDown holds the template for expanding one chart row into its
// source rows. Placeholders use {{name}} syntax; ParamMapping binds
// extra placeholders to columns of the selected row.
type DrillDown struct {
	QueryTemplate string            `json:"query_template"`
	ParamMapping  map[string]string `json:"param_mapping"`
}

// ExplainData is a drill-down result grid. TotalCount is the unwindowed
// source row count when the query reports one, zero otherwise.
type ExplainData struct {
	Columns    []string `json:"columns"`
	Rows       [][]any  `json:"rows"`
	TotalCount int      `json:"total_count"`
}

// Producers are not consistent about casing, so decoding accepts
// snake_case, camelCase, and the short x/y spellings side by side.
func (d *Data) UnmarshalJSON(b []byte) error {
	var raw struct {
		Title          string     `json:"title"`
		Database       string     `json:"database"`
		Query          string     `json:"query"`
		ChartType      string     `json:"chart_type"`
		ChartTypeAlt   string     `json:"chartType"`
		XField         string     `json:"x_field"`
		XFieldAlt      string     `json:"xField"`
		XShort         string     `json:"x"`
		YField         string     `json:"y_field"`
		YFieldAlt      string     `json:"yField"`
		YShort         string     `json:"y"`
		Columns        []string   `json:"columns"`
		Rows           [][]any    `json:"rows"`
		Timestamp      int64      `json:"timestamp"`
		Status         string     `json:"status"`
		Truncated      int        `json:"truncated_from"`
		TruncatedAlt   int        `json:"truncatedFrom"`
		DrillDown      *DrillDown `json:"drill_down"`
		DrillDownAlt   *DrillDown `json:"drillDown"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Title = raw.Title
	d.Database = raw.Database
	d.Query = raw.Query
	d.ChartType = firstNonEmpty(raw.ChartType, raw.ChartTypeAlt)
	d.XField = firstNonEmpty(raw.XField, raw.XFieldAlt, raw.XShort)
	d.YField = firstNonEmpty(raw.YField, raw.YFieldAlt, raw.YShort)
	d.Columns = raw.Columns
	d.Rows = raw.Rows
	d.Timestamp = raw.Timestamp
	d.Status = raw.Status
	d.TruncatedFrom = raw.Truncated
	if d.TruncatedFrom == 0 {
		d.TruncatedFrom = raw.TruncatedAlt
	}
	d.DrillDown = raw.DrillDown
	if d.DrillDown == nil {
		d.DrillDown = raw.DrillDownAlt
	}
	return nil
}

func (dd *DrillDown) UnmarshalJSON(b []byte) error {
	var raw struct {
		Template    string            `json:"query_template"`
		TemplateAlt string            `json:"queryTemplate"`
		Mapping     map[string]string `json:"param_mapping"`
		MappingAlt  map[string]string `json:"paramMapping"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	dd.QueryTemplate = firstNonEmpty(raw.Template, raw.TemplateAlt)
	dd.ParamMapping = raw.Mapping
	if dd.ParamMapping == nil {
		dd.ParamMapping = raw.MappingAlt
	}
	return nil
}

func (e *ExplainData) UnmarshalJSON(b []byte) error {
	var raw struct {
		Columns  []string `json:"columns"`
		Rows     [][]any  `json:"rows"`
		Total    int      `json:"total_count"`
		TotalAlt int      `json:"totalCount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Columns = raw.Columns
	e.Rows = raw.Rows
	e.TotalCount = raw.Total
	if e.TotalCount == 0 {
		e.TotalCount = raw.TotalAlt
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Decode parses one payload without normalizing it.
func Decode(b []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Normalize applies the load-time pass: cap rows at maxRows (recording
// the original count and flipping Status to "truncated") and stamp a
// missing timestamp. Callers downstream trust the row count afterwards.
func (d *Data) Normalize(maxRows int) {
	if maxRows > 0 && len(d.Rows) > maxRows {
		d.TruncatedFrom = len(d.Rows)
		d.Rows = d.Rows[:maxRows]
		d.Status = "truncated"
	}
	if d.Timestamp == 0 {
		d.Timestamp = time.Now().UnixMilli()
	}
}

// XIndex returns the position of XField in Columns, falling back to the
// first column when the field is unset or unknown.
func (d *Data) XIndex() int {
	for i, c := range d.Columns {
		if c == d.XField {
			return i
		}
	}
	return 0
}

// YIndex returns the position of YField in Columns, falling back to the
// second column (or the only column) when the field is unset or unknown.
func (d *Data) YIndex() int {
	for i, c := range d.Columns {
		if c == d.YField {
			return i
		}
	}
	if len(d.Columns) <= 1 {
		return 0
	}
	return 1
}

// XValue returns the label cell of the given row coerced to a string,
// or "" when the row or cell is missing.
func (d *Data) XValue(row int) string {
	v, ok := d.cell(row, d.XIndex())
	if !ok {
		return ""
	}
	return ToString(v)
}

// YValue returns the value cell of the given row coerced to a float,
// or 0 when the row or cell is missing.
func (d *Data) YValue(row int) float64 {
	v, ok := d.cell(row, d.YIndex())
	if !ok {
		return 0
	}
	return ToFloat(v)
}

func (d *Data) cell(row, col int) (any, bool) {
	if row < 0 || row >= len(d.Rows) {
		return nil, false
	}
	r := d.Rows[row]
	if col < 0 || col >= len(r) {
		return nil, false
	}
	return r[col], true
}

// Cell returns the raw cell value, nil when the row is short or the
// coordinates are out of range.
func (d *Data) Cell(row, col int) any {
	v, _ := d.cell(row, col)
	return v
}

// MaxY folds YValue over all rows starting from zero, so all-negative
// data still scales against a zero baseline.
func (d *Data) MaxY() float64 {
	max := 0.0
	for i := range d.Rows {
		if y := d.YValue(i); y > max {
			max = y
		}
	}
	return max
}

// MinY folds YValue over all rows. Empty data yields +Inf; chart views
// only consult it when rows exist.
func (d *Data) MinY() float64 {
	min := math.Inf(1)
	for i := range d.Rows {
		if y := d.YValue(i); y < min {
			min = y
		}
	}
	return min
}

// Kind resolves the rendering style. An explicit ChartType wins; with
// no rows the answer is bar; a date-looking first label picks line;
// all-numeric labels pick scatter; everything else is bar.
func (d *Data) Kind() Kind {
	switch strings.ToLower(d.ChartType) {
	case "bar":
		return KindBar
	case "line":
		return KindLine
	case "scatter":
		return KindScatter
	}
	if len(d.Rows) == 0 {
		return KindBar
	}
	first := d.XValue(0)
	if strings.Contains(first, "-") && len(first) >= 10 {
		return KindLine
	}
	xIdx := d.XIndex()
	allNumeric := true
	for row := range d.Rows {
		v, ok := d.cell(row, xIdx)
		if !ok || !IsNumeric(v) {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		return KindScatter
	}
	return KindBar
}
