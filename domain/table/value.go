package table

import (
	"strconv"

	"github.com/montanaflynn/stats"
)

// Float is an optional float64. Aggregates over zero eligible values
// produce an invalid Float; callers must never read Value when Valid
// is false. This replaces NaN-as-missing semantics.
type Float struct {
	Value float64
	Valid bool
}

// Some wraps a defined value.
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// None returns the undefined marker.
func None() Float {
	return Float{}
}

// Round returns the value rounded to the given number of decimal places.
// Undefined values stay undefined.
func (f Float) Round(places int) Float {
	if !f.Valid {
		return f
	}
	r, err := stats.Round(f.Value, places)
	if err != nil {
		return None()
	}
	return Some(r)
}

// String formats the value for display, using "NA" for undefined.
func (f Float) String() string {
	if !f.Valid {
		return "NA"
	}
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// Equal compares two optional floats. Two undefined values are equal.
func (f Float) Equal(other Float) bool {
	if f.Valid != other.Valid {
		return false
	}
	return !f.Valid || f.Value == other.Value
}

// CellKind discriminates the payload of a Cell.
type CellKind uint8

const (
	MissingCell CellKind = iota
	NumberCell
	LabelCell
)

// Cell is a single table value: a number, a categorical label, or missing.
type Cell struct {
	Kind  CellKind
	Num   float64
	Label string
}

// NumberOf builds a numeric cell.
func NumberOf(v float64) Cell {
	return Cell{Kind: NumberCell, Num: v}
}

// LabelOf builds a categorical cell.
func LabelOf(s string) Cell {
	return Cell{Kind: LabelCell, Label: s}
}

// Missing is the absent-value cell.
var Missing = Cell{Kind: MissingCell}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.Kind == MissingCell
}

// Number returns the cell as an optional float. Labels are undefined.
func (c Cell) Number() Float {
	if c.Kind != NumberCell {
		return None()
	}
	return Some(c.Num)
}

// Text returns a canonical string form of the cell, "" when missing.
// Numeric cells format with the shortest round-trip representation so
// that 12 and 12.0 group under the same key.
func (c Cell) Text() string {
	switch c.Kind {
	case NumberCell:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case LabelCell:
		return c.Label
	default:
		return ""
	}
}
