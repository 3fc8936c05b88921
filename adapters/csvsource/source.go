// Package csvsource loads long-format study data from CSV into the
// table abstraction.
package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"longeda/domain/table"
	"longeda/internal"
	apperrors "longeda/internal/errors"
	"longeda/ports"
)

// Source reads a CSV file with a header row.
type Source struct {
	path   string
	logger *internal.Logger
}

var _ ports.TableSource = (*Source)(nil)

// New creates a CSV table source for the given file path.
func New(path string) *Source {
	return &Source{path: path, logger: internal.DefaultLogger}
}

// Load reads the whole file into an immutable table. The first record
// is the header; column types are inferred from the values.
func (s *Source) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.SourceError("csv", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	t, err := FromReader(f, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[CSVSource] loaded %s (%d columns, %d rows)", s.path, len(t.Schema()), t.Len())
	return t, nil
}

// FromReader parses CSV content from any reader into a table.
func FromReader(r io.Reader, name string) (*table.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, apperrors.SourceError("csv", err)
	}
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("csv input has no header row")
	}

	t, err := table.FromRecords(name, records[0], records[1:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build table from csv records")
	}
	return t, nil
}
