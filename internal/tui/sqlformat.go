package tui

import "strings"

// formatSQL reflows a query for the viewer: keywords uppercased, one
// top-level clause per line, AND/OR continuations indented. Subqueries
// inside parens stay on their clause line.
func formatSQL(sql string) string {
	toks := significantTokens(scanSQL(sql))
	if len(toks) == 0 {
		return ""
	}

	var lines []string
	var cur []sqlToken
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, renderLine(cur))
			cur = nil
		}
	}

	depth := 0
	pendingBetween := false
	for i, t := range toks {
		if t.kind == tokPunct {
			switch t.text {
			case "(":
				depth++
			case ")":
				depth--
			}
		}
		if t.kind == tokKeyword {
			switch strings.ToLower(t.text) {
			case "between":
				pendingBetween = true
			case "and":
				if pendingBetween {
					pendingBetween = false
					cur = append(cur, t)
					continue
				}
			}
		}
		if depth == 0 && i > 0 && startsClause(toks, i) {
			flush()
		}
		cur = append(cur, t)
		if t.kind == tokComment && strings.HasPrefix(t.text, "--") {
			flush()
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

func significantTokens(toks []sqlToken) []sqlToken {
	out := toks[:0:0]
	for _, t := range toks {
		if t.kind != tokText {
			out = append(out, t)
		}
	}
	return out
}

func startsClause(toks []sqlToken, i int) bool {
	t := toks[i]
	if t.kind != tokKeyword {
		return false
	}
	switch strings.ToLower(t.text) {
	case "from", "where", "having", "limit", "offset", "union", "qualify", "window",
		"group", "order", "and", "or":
		return true
	case "join":
		switch strings.ToLower(wordAt(toks, i-1)) {
		case "left", "right", "inner", "outer", "full", "cross", "natural":
			return false
		}
		return true
	case "left", "right", "inner", "full", "cross":
		switch strings.ToLower(wordAt(toks, i+1)) {
		case "join", "outer":
			return true
		}
		return false
	}
	return false
}

func wordAt(toks []sqlToken, i int) string {
	if i < 0 || i >= len(toks) {
		return ""
	}
	return toks[i].text
}

func renderLine(toks []sqlToken) string {
	var b strings.Builder
	first := strings.ToLower(toks[0].text)
	if toks[0].kind == tokKeyword && (first == "and" || first == "or") {
		b.WriteString("  ")
	}
	for i, t := range toks {
		if i > 0 && needSpace(toks[i-1], t) {
			b.WriteString(" ")
		}
		if t.kind == tokKeyword {
			b.WriteString(strings.ToUpper(t.text))
		} else {
			b.WriteString(t.text)
		}
	}
	return b.String()
}

func needSpace(prev, cur sqlToken) bool {
	if prev.kind == tokPunct && (prev.text == "(" || prev.text == ".") {
		return false
	}
	if cur.kind == tokPunct {
		switch cur.text {
		case ")", ",", ".", ";":
			return false
		}
	}
	if cur.kind == tokPunct && cur.text == "(" && (prev.kind == tokFunction || prev.kind == tokIdent) {
		return false
	}
	return true
}
