package table

// ColumnType classifies a column's declared data type
type ColumnType string

const (
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "categorical"
)

// Column describes a single column in the table schema. The schema is
// introspected once at construction; analyzers validate requested
// columns against it before touching any rows.
type Column struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	Nullable     bool       `json:"nullable"`
	MissingCount int        `json:"missing_count"`
	UniqueCount  int        `json:"unique_count"`
}

// Schema is the ordered column set of a table.
type Schema []Column

// Column looks up a column by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Has reports whether a column with the given name exists.
func (s Schema) Has(name string) bool {
	_, ok := s.Column(name)
	return ok
}

// Names returns the column names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the names of numeric columns in declaration order.
func (s Schema) NumericNames() []string {
	var names []string
	for _, c := range s {
		if c.Type == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}
