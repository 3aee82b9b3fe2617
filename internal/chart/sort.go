package chart

import "sort"

// Cell ordering classes. Missing cells sort after nulls, nulls after
// values, in both sort directions; only value-vs-value comparisons
// honor the requested direction.
const (
	rankValue = iota
	rankNull
	rankAbsent
)

func cellRank(row []any, col int) (any, int) {
	if col < 0 || col >= len(row) {
		return nil, rankAbsent
	}
	v := row[col]
	if v == nil {
		return nil, rankNull
	}
	return v, rankValue
}

// SortRowIndices returns a stable permutation of row indices ordered by
// the given column. Rows are never mutated; callers render through the
// permutation. Two numeric cells (including numeric strings) compare as
// floats, anything else compares by its display string.
func SortRowIndices(rows [][]any, col int, asc bool) []int {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, ra := cellRank(rows[idx[a]], col)
		vb, rb := cellRank(rows[idx[b]], col)
		if ra != rb {
			return ra < rb
		}
		if ra != rankValue {
			return false
		}
		return lessValue(va, vb, asc)
	})
	return idx
}

func lessValue(a, b any, asc bool) bool {
	if IsNumeric(a) && IsNumeric(b) {
		fa, fb := ToFloat(a), ToFloat(b)
		if asc {
			return fa < fb
		}
		return fb < fa
	}
	sa, sb := ToString(a), ToString(b)
	if asc {
		return sa < sb
	}
	return sb < sa
}

// IdentityIndices is the unsorted permutation.
func IdentityIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
