package xlsx

import "strconv"

// Identifier reconciliation. The same logical id may be stored as a
// native number in one sheet and as text in another, an artifact of the
// sheets having evolved independently. Lookups therefore try a sequence
// of representations and take the first strategy that matches anything.
// Ids "7" and 7.0 are treated as the same entity; that ambiguity is
// accepted here and eliminated going forward by writing all new ids as
// text (see the table accessors).

// matchRowIndexes returns the indexes of rows whose value in column
// denotes the same identifier as target. Strategies, in order: exact
// value match; textual target parsed to a number and matched against
// numeric cells; numeric target rendered as text and matched against
// textual cells; both sides rendered as text. The first strategy with
// at least one hit wins; no hits yields an empty result.
func matchRowIndexes(rows []Row, column string, target any) []int {
	var out []int

	// Exact match.
	for i, r := range rows {
		if v, ok := r[column]; ok && v == target {
			out = append(out, i)
		}
	}
	if len(out) > 0 {
		return out
	}

	switch t := target.(type) {
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			for i, r := range rows {
				if v, ok := r[column].(float64); ok && v == f {
					out = append(out, i)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	case float64, int:
		s := cellString(t)
		for i, r := range rows {
			if v, ok := r[column].(string); ok && v == s {
				out = append(out, i)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	// Last resort: compare both sides as text.
	s := cellString(target)
	for i, r := range rows {
		if v, ok := r[column]; ok && v != nil && cellString(v) == s {
			out = append(out, i)
		}
	}
	return out
}

// matchRows is matchRowIndexes returning the rows themselves.
func matchRows(rows []Row, column string, target any) []Row {
	indexes := matchRowIndexes(rows, column, target)
	out := make([]Row, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, rows[i])
	}
	return out
}
