package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type sqlTokenKind int

const (
	tokText sqlTokenKind = iota
	tokKeyword
	tokFunction
	tokString
	tokNumber
	tokComment
	tokOperator
	tokPunct
	tokIdent
)

// sqlToken keeps the raw input slice so lines reassemble byte for byte.
type sqlToken struct {
	kind sqlTokenKind
	text string
}

var sqlKeywords = wordSet(
	"select", "from", "where", "group", "by", "order", "having", "limit",
	"offset", "join", "left", "right", "inner", "outer", "full", "cross",
	"on", "as", "and", "or", "not", "in", "is", "null", "like", "ilike",
	"between", "case", "when", "then", "else", "end", "union", "all",
	"distinct", "with", "insert", "into", "values", "update", "set",
	"delete", "create", "table", "view", "drop", "alter", "asc", "desc",
	"using", "exists", "cast", "attach", "true", "false", "interval",
	"qualify", "over", "partition", "window", "filter",
)

var sqlFunctions = wordSet(
	"count", "sum", "avg", "min", "max", "coalesce", "nullif", "round",
	"floor", "ceil", "abs", "upper", "lower", "length", "substr",
	"substring", "trim", "concat", "replace", "now", "date_trunc",
	"date_part", "strftime", "current_date", "current_timestamp",
	"row_number", "rank", "dense_rank", "lag", "lead", "first", "last",
	"list", "unnest", "regexp_matches", "array_agg", "string_agg",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// highlightSQL renders the query as one styled string per source line.
func highlightSQL(sql string) []string {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	lines := []string{""}
	for _, tok := range scanSQL(sql) {
		parts := strings.Split(tok.text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, "")
			}
			if part == "" {
				continue
			}
			if style, ok := tokenStyle(tok.kind); ok {
				part = style.Render(part)
			}
			lines[len(lines)-1] += part
		}
	}
	return lines
}

func tokenStyle(kind sqlTokenKind) (lipgloss.Style, bool) {
	switch kind {
	case tokKeyword:
		return sqlKeywordStyle, true
	case tokFunction:
		return sqlFunctionStyle, true
	case tokString:
		return sqlStringStyle, true
	case tokNumber:
		return sqlNumberStyle, true
	case tokComment:
		return sqlCommentStyle, true
	case tokOperator:
		return sqlOperatorStyle, true
	case tokIdent:
		return sqlIdentStyle, true
	}
	return lipgloss.Style{}, false
}

func scanSQL(input string) []sqlToken {
	s := newSQLScanner(input)
	var toks []sqlToken
	for {
		tok, ok := s.next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// sqlScanner walks the input one byte at a time. Unlike a parser lexer
// it never discards anything: whitespace and comments come back as
// tokens too.
type sqlScanner struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

func newSQLScanner(input string) *sqlScanner {
	s := &sqlScanner{input: input}
	s.readChar()
	return s
}

func (s *sqlScanner) readChar() {
	if s.readPos >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
}

func (s *sqlScanner) peekChar() byte {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

func (s *sqlScanner) next() (sqlToken, bool) {
	if s.ch == 0 {
		return sqlToken{}, false
	}
	start := s.pos
	switch {
	case isSQLSpace(s.ch):
		for isSQLSpace(s.ch) {
			s.readChar()
		}
		return sqlToken{tokText, s.input[start:s.pos]}, true

	case s.ch == '-' && s.peekChar() == '-':
		for s.ch != '\n' && s.ch != 0 {
			s.readChar()
		}
		return sqlToken{tokComment, s.input[start:s.pos]}, true

	case s.ch == '/' && s.peekChar() == '*':
		s.readChar()
		s.readChar()
		for s.ch != 0 {
			if s.ch == '*' && s.peekChar() == '/' {
				s.readChar()
				s.readChar()
				break
			}
			s.readChar()
		}
		return sqlToken{tokComment, s.input[start:s.pos]}, true

	case s.ch == '\'':
		s.scanQuoted('\'')
		return sqlToken{tokString, s.input[start:s.pos]}, true

	case s.ch == '"':
		s.scanQuoted('"')
		return sqlToken{tokIdent, s.input[start:s.pos]}, true

	case isSQLDigit(s.ch):
		s.scanNumber()
		return sqlToken{tokNumber, s.input[start:s.pos]}, true

	case isSQLLetter(s.ch) || s.ch == '_':
		for isSQLLetter(s.ch) || isSQLDigit(s.ch) || s.ch == '_' {
			s.readChar()
		}
		word := s.input[start:s.pos]
		return sqlToken{classifyWord(word), word}, true

	case isSQLOperator(s.ch):
		ch := s.ch
		s.readChar()
		if (ch == '<' && (s.ch == '=' || s.ch == '>')) ||
			(ch == '>' && s.ch == '=') ||
			(ch == '!' && s.ch == '=') ||
			(ch == '|' && s.ch == '|') {
			s.readChar()
		}
		return sqlToken{tokOperator, s.input[start:s.pos]}, true

	default:
		s.readChar()
		return sqlToken{tokPunct, s.input[start:s.pos]}, true
	}
}

// scanQuoted consumes a quoted region, honoring doubled-quote escapes.
func (s *sqlScanner) scanQuoted(quote byte) {
	s.readChar()
	for s.ch != 0 {
		if s.ch == quote {
			if s.peekChar() == quote {
				s.readChar()
				s.readChar()
				continue
			}
			s.readChar()
			return
		}
		s.readChar()
	}
}

func (s *sqlScanner) scanNumber() {
	for isSQLDigit(s.ch) {
		s.readChar()
	}
	if s.ch == '.' && isSQLDigit(s.peekChar()) {
		s.readChar()
		for isSQLDigit(s.ch) {
			s.readChar()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		s.readChar()
		if s.ch == '+' || s.ch == '-' {
			s.readChar()
		}
		for isSQLDigit(s.ch) {
			s.readChar()
		}
	}
}

func classifyWord(word string) sqlTokenKind {
	lower := strings.ToLower(word)
	if _, ok := sqlKeywords[lower]; ok {
		return tokKeyword
	}
	if _, ok := sqlFunctions[lower]; ok {
		return tokFunction
	}
	return tokIdent
}

func isSQLSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isSQLLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isSQLDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSQLOperator(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '|':
		return true
	}
	return false
}
