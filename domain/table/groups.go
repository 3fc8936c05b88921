package table

// Group is the set of row indices sharing one value of a grouping
// column, keyed by the value's canonical text. Num carries the numeric
// value for numeric grouping columns so callers can order groups by it.
type Group struct {
	Key  string
	Num  Float
	Rows []int
}

// Groups partitions the table's rows by the values of the given column,
// in encounter order. Rows where the column is missing are dropped,
// matching how group-by treats null keys.
func (t *Table) Groups(column string) []Group {
	j, ok := t.index[column]
	if !ok {
		return nil
	}

	var groups []Group
	byKey := make(map[string]int)
	for i, row := range t.rows {
		c := row[j]
		if c.IsMissing() {
			continue
		}
		key := c.Text()
		gi, seen := byKey[key]
		if !seen {
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, Group{Key: key, Num: c.Number()})
		}
		groups[gi].Rows = append(groups[gi].Rows, i)
	}
	return groups
}

// DistinctTexts returns the distinct non-missing values of a column in
// encounter order, as canonical text.
func (t *Table) DistinctTexts(column string) []string {
	groups := t.Groups(column)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}
