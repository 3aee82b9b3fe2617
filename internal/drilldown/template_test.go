package drilldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

func salesData() *chart.Data {
	return &chart.Data{
		Database: "analytics",
		XField:   "month",
		YField:   "revenue",
		Columns:  []string{"month", "revenue", "region"},
		Rows: [][]any{
			{"2024-03", 1500.5, "EMEA"},
			{"2024-04", 1800.0, "O'Brien & Sons"},
			{nil, 0.0, "APAC"},
		},
		DrillDown: &chart.DrillDown{
			QueryTemplate: "SELECT * FROM {{database}}.sales WHERE month = '{{month}}' AND revenue > {{y}}",
			ParamMapping:  map[string]string{"month": "month"},
		},
	}
}

func TestBuildQuery(t *testing.T) {
	q, err := BuildQuery(salesData(), 0)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT * FROM analytics.sales WHERE month = '2024-03' AND revenue > 1500.5",
		q)
}

func TestBuildQueryEscapesQuotes(t *testing.T) {
	d := salesData()
	d.DrillDown.QueryTemplate = "SELECT * FROM orders WHERE customer = '{{customer}}'"
	d.DrillDown.ParamMapping = map[string]string{"customer": "region"}

	q, err := BuildQuery(d, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM orders WHERE customer = 'O''Brien & Sons'", q)
}

func TestBuildQueryNullCell(t *testing.T) {
	d := salesData()
	d.DrillDown.QueryTemplate = "SELECT * FROM sales WHERE month = {{x}}"

	q, err := BuildQuery(d, 2)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM sales WHERE month = NULL", q)
}

func TestBuildQueryIntegralNumberRendersBare(t *testing.T) {
	d := salesData()
	d.DrillDown.QueryTemplate = "SELECT * WHERE revenue > {{y}}"

	q, err := BuildQuery(d, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * WHERE revenue > 1800", q)
}

func TestBuildQueryLeavesUnknownPlaceholders(t *testing.T) {
	d := salesData()
	d.DrillDown.QueryTemplate = "SELECT {{mystery}} FROM t WHERE m = '{{month}}'"

	q, err := BuildQuery(d, 0)
	require.NoError(t, err)
	assert.Equal(t, "SELECT {{mystery}} FROM t WHERE m = '2024-03'", q)
}

func TestBuildQuerySkipsMappingsToMissingColumns(t *testing.T) {
	d := salesData()
	d.DrillDown.QueryTemplate = "SELECT * WHERE a = '{{a}}'"
	d.DrillDown.ParamMapping = map[string]string{"a": "no_such_column"}

	q, err := BuildQuery(d, 0)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * WHERE a = '{{a}}'", q)
}

func TestBuildQueryMissingTemplate(t *testing.T) {
	_, err := BuildQuery(nil, 0)
	assert.ErrorIs(t, err, ErrNoTemplate)

	d := salesData()
	d.DrillDown = nil
	_, err = BuildQuery(d, 0)
	assert.ErrorIs(t, err, ErrNoTemplate)

	d = salesData()
	d.DrillDown.QueryTemplate = "   "
	_, err = BuildQuery(d, 0)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestBuildQueryRowOutOfRange(t *testing.T) {
	_, err := BuildQuery(salesData(), 3)
	assert.ErrorIs(t, err, ErrNoRow)

	_, err = BuildQuery(salesData(), -1)
	assert.ErrorIs(t, err, ErrNoRow)
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string quotes doubled", "O'Brien", "O''Brien"},
		{"nil is bare NULL", nil, "NULL"},
		{"integral float", 2024.0, "2024"},
		{"fractional float", 10.25, "10.25"},
		{"bool", true, "true"},
		{"array keeps json shape", []any{"a", 1.0}, `["a",1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.in))
		})
	}
}
