package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSQLClassifiesTokens(t *testing.T) {
	input := "SELECT count(*) FROM t WHERE name = 'O''Brien' -- note\nLIMIT 10"
	toks := scanSQL(input)

	var kinds []sqlTokenKind
	var texts []string
	for _, tok := range toks {
		if tok.kind == tokText {
			continue
		}
		kinds = append(kinds, tok.kind)
		texts = append(texts, tok.text)
	}

	require.Equal(t, []string{
		"SELECT", "count", "(", "*", ")", "FROM", "t", "WHERE", "name",
		"=", "'O''Brien'", "-- note", "LIMIT", "10",
	}, texts)
	assert.Equal(t, []sqlTokenKind{
		tokKeyword, tokFunction, tokPunct, tokOperator, tokPunct,
		tokKeyword, tokIdent, tokKeyword, tokIdent, tokOperator,
		tokString, tokComment, tokKeyword, tokNumber,
	}, kinds)
}

func TestScanSQLIsLossless(t *testing.T) {
	inputs := []string{
		"select a,b , c from \"weird name\" where x<>1 and y>=2.5e3",
		"/* block\ncomment */ select 1",
		"select '--not a comment' from t",
		"select * from t -- trailing",
	}
	for _, input := range inputs {
		var b strings.Builder
		for _, tok := range scanSQL(input) {
			b.WriteString(tok.text)
		}
		assert.Equal(t, input, b.String())
	}
}

func TestScanSQLOperatorPairs(t *testing.T) {
	toks := scanSQL("a<=b<>c!=d||e")
	var ops []string
	for _, tok := range toks {
		if tok.kind == tokOperator {
			ops = append(ops, tok.text)
		}
	}
	assert.Equal(t, []string{"<=", "<>", "!=", "||"}, ops)
}

func TestHighlightSQLSplitsLines(t *testing.T) {
	lines := highlightSQL("SELECT a\nFROM t\nWHERE x = 1")
	require.Len(t, lines, 3)
	assert.Equal(t, "SELECT a", stripLine(lines[0]))
	assert.Equal(t, "FROM t", stripLine(lines[1]))
	assert.Equal(t, "WHERE x = 1", stripLine(lines[2]))
}

func TestHighlightSQLBlockCommentSpansLines(t *testing.T) {
	lines := highlightSQL("SELECT 1 /* first\nsecond */ FROM t")
	require.Len(t, lines, 2)
	assert.Equal(t, "SELECT 1 /* first", stripLine(lines[0]))
	assert.Equal(t, "second */ FROM t", stripLine(lines[1]))
}

func TestHighlightSQLEmpty(t *testing.T) {
	assert.Nil(t, highlightSQL(""))
	assert.Nil(t, highlightSQL("  \n  "))
}
