// Package table provides the in-memory tabular dataset abstraction the
// analyzers operate on: ordered rows over a fixed, introspected column
// schema, with explicit missing-value semantics. Tables are immutable
// once built, so concurrent analyzer calls on the same table are safe.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"longeda/domain/core"
)

// Table is an ordered sequence of observation rows in long format.
type Table struct {
	id     core.TableID
	name   string
	schema Schema
	index  map[string]int
	rows   [][]Cell
}

// FromRecords builds a table from raw string records, e.g. parsed CSV or
// spreadsheet rows. Column types are inferred: a column is numeric when
// every non-empty value parses as a float, categorical otherwise. Empty
// or whitespace-only values become missing cells.
func FromRecords(name string, headers []string, records [][]string) (*Table, error) {
	index, err := buildIndex(headers)
	if err != nil {
		return nil, err
	}

	numeric := inferNumeric(headers, records)

	rows := make([][]Cell, len(records))
	for i, record := range records {
		row := make([]Cell, len(headers))
		for j := range headers {
			row[j] = Missing
			if j >= len(record) {
				continue
			}
			raw := strings.TrimSpace(record[j])
			if raw == "" {
				continue
			}
			if numeric[j] {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d column %q: %w", i, headers[j], err)
				}
				row[j] = NumberOf(v)
			} else {
				row[j] = LabelOf(raw)
			}
		}
		rows[i] = row
	}

	return finalize(name, headers, index, rows), nil
}

// FromRows builds a table from typed row maps, e.g. scanned database
// rows. Numeric Go kinds become numeric cells; strings and byte slices
// become labels; nils become missing. A column holding both numbers and
// labels is demoted to categorical.
func FromRows(name string, headers []string, input []map[string]any) (*Table, error) {
	index, err := buildIndex(headers)
	if err != nil {
		return nil, err
	}

	rows := make([][]Cell, len(input))
	for i, m := range input {
		row := make([]Cell, len(headers))
		for j, h := range headers {
			row[j] = cellOf(m[h])
		}
		rows[i] = row
	}

	// Demote mixed columns to categorical.
	for j := range headers {
		hasLabel := false
		for _, row := range rows {
			if row[j].Kind == LabelCell {
				hasLabel = true
				break
			}
		}
		if !hasLabel {
			continue
		}
		for _, row := range rows {
			if row[j].Kind == NumberCell {
				row[j] = LabelOf(row[j].Text())
			}
		}
	}

	return finalize(name, headers, index, rows), nil
}

func cellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Missing
	case float64:
		return NumberOf(x)
	case float32:
		return NumberOf(float64(x))
	case int:
		return NumberOf(float64(x))
	case int32:
		return NumberOf(float64(x))
	case int64:
		return NumberOf(float64(x))
	case bool:
		if x {
			return NumberOf(1)
		}
		return NumberOf(0)
	case []byte:
		return labelOrMissing(string(x))
	case string:
		return labelOrMissing(x)
	default:
		return labelOrMissing(fmt.Sprintf("%v", x))
	}
}

func labelOrMissing(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing
	}
	return LabelOf(s)
}

func buildIndex(headers []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[h]; dup {
			return nil, fmt.Errorf("duplicate column name %q", h)
		}
		index[h] = i
	}
	return index, nil
}

// inferNumeric decides, per column, whether every non-empty value parses
// as a float. Columns with no values at all stay categorical.
func inferNumeric(headers []string, records [][]string) []bool {
	numeric := make([]bool, len(headers))
	for j := range headers {
		seen := false
		allParse := true
		for _, record := range records {
			if j >= len(record) {
				continue
			}
			raw := strings.TrimSpace(record[j])
			if raw == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				allParse = false
				break
			}
		}
		numeric[j] = seen && allParse
	}
	return numeric
}

func finalize(name string, headers []string, index map[string]int, rows [][]Cell) *Table {
	schema := make(Schema, len(headers))
	for j, h := range headers {
		col := Column{Name: strings.TrimSpace(h), Type: Categorical}
		distinct := make(map[string]struct{})
		sawNumber := false
		sawLabel := false
		for _, row := range rows {
			c := row[j]
			if c.IsMissing() {
				col.MissingCount++
				continue
			}
			distinct[c.Text()] = struct{}{}
			if c.Kind == NumberCell {
				sawNumber = true
			} else {
				sawLabel = true
			}
		}
		if sawNumber && !sawLabel {
			col.Type = Numeric
		}
		col.Nullable = col.MissingCount > 0
		col.UniqueCount = len(distinct)
		schema[j] = col
	}

	return &Table{
		id:     core.TableID(core.NewID()),
		name:   name,
		schema: schema,
		index:  index,
		rows:   rows,
	}
}

// ID returns the identifier assigned when the table was built.
func (t *Table) ID() core.TableID {
	return t.id
}

// Name returns the caller-supplied table name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Schema returns the introspected column schema.
func (t *Table) Schema() Schema {
	return t.schema
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumericColumns returns the names of numeric columns in declaration order.
func (t *Table) NumericColumns() []string {
	return t.schema.NumericNames()
}

// CellAt returns the cell at (row, column). Unknown columns and
// out-of-range rows read as missing.
func (t *Table) CellAt(row int, column string) Cell {
	j, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return Missing
	}
	return t.rows[row][j]
}

// NumberAt returns the numeric value at (row, column), undefined for
// missing cells and categorical columns.
func (t *Table) NumberAt(row int, column string) Float {
	return t.CellAt(row, column).Number()
}

// TextAt returns the canonical string form of the cell at (row, column),
// "" for missing.
func (t *Table) TextAt(row int, column string) string {
	return t.CellAt(row, column).Text()
}
