package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFieldAliases(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name: "snake_case",
			payload: `{
				"title": "Revenue", "database": "sales", "chart_type": "bar",
				"x_field": "month", "y_field": "revenue",
				"columns": ["month", "revenue"], "rows": [["Jan", 100]],
				"drill_down": {
					"query_template": "SELECT 1",
					"param_mapping": {"m": "month"}
				}
			}`,
		},
		{
			name: "camelCase",
			payload: `{
				"title": "Revenue", "database": "sales", "chartType": "bar",
				"xField": "month", "yField": "revenue",
				"columns": ["month", "revenue"], "rows": [["Jan", 100]],
				"drillDown": {
					"queryTemplate": "SELECT 1",
					"paramMapping": {"m": "month"}
				}
			}`,
		},
		{
			name: "short_axis_names",
			payload: `{
				"title": "Revenue", "database": "sales", "chart_type": "bar",
				"x": "month", "y": "revenue",
				"columns": ["month", "revenue"], "rows": [["Jan", 100]],
				"drill_down": {
					"query_template": "SELECT 1",
					"param_mapping": {"m": "month"}
				}
			}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, "Revenue", d.Title)
			assert.Equal(t, "sales", d.Database)
			assert.Equal(t, "bar", d.ChartType)
			assert.Equal(t, "month", d.XField)
			assert.Equal(t, "revenue", d.YField)
			require.NotNil(t, d.DrillDown)
			assert.Equal(t, "SELECT 1", d.DrillDown.QueryTemplate)
			assert.Equal(t, map[string]string{"m": "month"}, d.DrillDown.ParamMapping)
		})
	}
}

func TestDecodeTruncatedFromAlias(t *testing.T) {
	d, err := Decode([]byte(`{"columns": [], "rows": [], "truncatedFrom": 120}`))
	require.NoError(t, err)
	assert.Equal(t, 120, d.TruncatedFrom)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	d, err := Decode([]byte(`{"title": "t", "generator": "v2", "extras": {"a": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, "t", d.Title)
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want Kind
	}{
		{
			name: "explicit wins over data shape",
			data: Data{ChartType: "Scatter", Columns: []string{"day"}, Rows: [][]any{{"2024-01-01"}}},
			want: KindScatter,
		},
		{
			name: "no rows defaults to bar",
			data: Data{Columns: []string{"x"}},
			want: KindBar,
		},
		{
			name: "date-like first label picks line",
			data: Data{Columns: []string{"day", "n"}, Rows: [][]any{{"2024-01-01", 1.0}, {"2024-01-02", 2.0}}},
			want: KindLine,
		},
		{
			name: "short dashed label is not date-like",
			data: Data{Columns: []string{"rng", "n"}, Rows: [][]any{{"a-b", 1.0}}},
			want: KindBar,
		},
		{
			name: "all numeric labels pick scatter",
			data: Data{Columns: []string{"x", "y"}, Rows: [][]any{{1.0, 2.0}, {"3.5", 4.0}}},
			want: KindScatter,
		},
		{
			name: "mixed labels fall back to bar",
			data: Data{Columns: []string{"x", "y"}, Rows: [][]any{{1.0, 2.0}, {"north", 4.0}}},
			want: KindBar,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.data.Kind())
		})
	}
}

func TestAxisIndexFallbacks(t *testing.T) {
	d := Data{Columns: []string{"region", "units", "revenue"}}

	d.XField, d.YField = "region", "revenue"
	assert.Equal(t, 0, d.XIndex())
	assert.Equal(t, 2, d.YIndex())

	d.XField, d.YField = "missing", "also_missing"
	assert.Equal(t, 0, d.XIndex())
	assert.Equal(t, 1, d.YIndex())

	single := Data{Columns: []string{"only"}}
	assert.Equal(t, 0, single.XIndex())
	assert.Equal(t, 0, single.YIndex())

	empty := Data{}
	assert.Equal(t, 0, empty.XIndex())
	assert.Equal(t, 0, empty.YIndex())
}

func TestRowAccessors(t *testing.T) {
	d := Data{
		XField:  "label",
		YField:  "value",
		Columns: []string{"label", "value"},
		Rows:    [][]any{{"alpha", 12.5}, {nil, "33"}, {"short"}},
	}

	assert.Equal(t, "alpha", d.XValue(0))
	assert.Equal(t, 12.5, d.YValue(0))
	assert.Equal(t, "null", d.XValue(1))
	assert.Equal(t, 33.0, d.YValue(1))

	// Row 2 has no value cell, row 9 does not exist.
	assert.Equal(t, 0.0, d.YValue(2))
	assert.Equal(t, "", d.XValue(9))
	assert.Equal(t, 0.0, d.YValue(-1))
}

func TestYBounds(t *testing.T) {
	d := Data{Columns: []string{"x", "y"}, Rows: [][]any{{"a", -5.0}, {"b", -1.0}}}
	assert.Equal(t, 0.0, d.MaxY())
	assert.Equal(t, -5.0, d.MinY())

	empty := Data{}
	assert.Equal(t, 0.0, empty.MaxY())
	assert.True(t, math.IsInf(empty.MinY(), 1))
}

func TestNormalizeCapsRows(t *testing.T) {
	d := Data{Timestamp: 1700000000000}
	for i := 0; i < 60; i++ {
		d.Rows = append(d.Rows, []any{float64(i)})
	}
	d.Normalize(DefaultMaxRows)

	assert.Len(t, d.Rows, 50)
	assert.Equal(t, 60, d.TruncatedFrom)
	assert.Equal(t, "truncated", d.Status)
	assert.EqualValues(t, 1700000000000, d.Timestamp)
}

func TestNormalizeUnderCap(t *testing.T) {
	d := Data{Rows: [][]any{{"a"}, {"b"}}, Status: "ok"}
	d.Normalize(DefaultMaxRows)

	assert.Len(t, d.Rows, 2)
	assert.Zero(t, d.TruncatedFrom)
	assert.Equal(t, "ok", d.Status)
	assert.NotZero(t, d.Timestamp, "missing timestamp gets stamped at load")
}
