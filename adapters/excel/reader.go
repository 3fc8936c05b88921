// Package excel loads long-format study data from Excel workbooks into
// the table abstraction.
package excel

import (
	"context"
	"path/filepath"
	"strings"

	"longeda/domain/table"
	"longeda/internal"
	apperrors "longeda/internal/errors"
	"longeda/ports"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is read when no sheet name is given.
const DefaultSheet = "Sheet1"

// Source reads one worksheet of an xlsx file.
type Source struct {
	path   string
	sheet  string
	logger *internal.Logger
}

var _ ports.TableSource = (*Source)(nil)

// New creates an Excel table source for the given file path, reading
// the default sheet.
func New(path string) *Source {
	return NewWithSheet(path, DefaultSheet)
}

// NewWithSheet creates an Excel table source reading a specific sheet.
func NewWithSheet(path, sheet string) *Source {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Source{path: path, sheet: sheet, logger: internal.DefaultLogger}
}

// Load reads the worksheet into an immutable table. The first row is
// the header; column types are inferred from the cell values.
func (s *Source) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, apperrors.SourceError("excel", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, apperrors.SourceError("excel", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.InvalidInput("worksheet has no header row")
	}

	name := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	t, err := table.FromRecords(name, rows[0], rows[1:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build table from worksheet")
	}
	s.logger.Info("[ExcelSource] loaded %s!%s (%d columns, %d rows)", s.path, s.sheet, len(t.Schema()), t.Len())
	return t, nil
}
