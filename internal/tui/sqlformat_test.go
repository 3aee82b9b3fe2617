package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSQL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clauses break and keywords uppercase",
			in:   "select a, b from t where x = 1 and y = 2",
			want: "SELECT a, b\nFROM t\nWHERE x = 1\n  AND y = 2",
		},
		{
			name: "between keeps its and",
			in:   "select * from t where a between 1 and 5 or b = 2",
			want: "SELECT *\nFROM t\nWHERE a BETWEEN 1 AND 5\n  OR b = 2",
		},
		{
			name: "join breaks once",
			in:   "select * from a left join b on a.id = b.id",
			want: "SELECT *\nFROM a\nLEFT JOIN b ON a.id = b.id",
		},
		{
			name: "function calls stay tight",
			in:   "select count(*), sum(amount) from t group by region order by 2 desc",
			want: "SELECT count(*), sum(amount)\nFROM t\nGROUP BY region\nORDER BY 2 DESC",
		},
		{
			name: "subquery stays on its clause line",
			in:   "select * from (select a from t where b = 1) s where c = 2",
			want: "SELECT *\nFROM (SELECT a FROM t WHERE b = 1) s\nWHERE c = 2",
		},
		{
			name: "identifier case is preserved",
			in:   "select Revenue from Sales limit 10",
			want: "SELECT Revenue\nFROM Sales\nLIMIT 10",
		},
		{
			name: "line comment ends its line",
			in:   "select a -- label\nfrom t",
			want: "SELECT a -- label\nFROM t",
		},
		{
			name: "already formatted input reflows the same",
			in:   "SELECT a\nFROM t\nWHERE x = 1",
			want: "SELECT a\nFROM t\nWHERE x = 1",
		},
		{
			name: "empty",
			in:   "   ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSQL(tt.in))
		})
	}
}

func TestFormatSQLStringsSurviveVerbatim(t *testing.T) {
	got := formatSQL("select * from t where name = 'it''s from where'")
	assert.Equal(t, "SELECT *\nFROM t\nWHERE name = 'it''s from where'", got,
		"keywords inside string literals must not trigger breaks")
}
