// Package sqldb loads long-format study data from a SQL query into the
// table abstraction. It is read-only: the query result is materialized
// once and the database is not touched again.
package sqldb

import (
	"context"

	"longeda/domain/table"
	"longeda/internal"
	apperrors "longeda/internal/errors"
	"longeda/ports"

	"github.com/jmoiron/sqlx"
)

// Source materializes the result of one SELECT statement.
type Source struct {
	db     *sqlx.DB
	query  string
	name   string
	logger *internal.Logger
}

var _ ports.TableSource = (*Source)(nil)

// New creates a SQL table source. The name labels the resulting table.
func New(db *sqlx.DB, query, name string) *Source {
	if name == "" {
		name = "query"
	}
	return &Source{db: db, query: query, name: name, logger: internal.DefaultLogger}
}

// Load runs the query and scans every row into an immutable table.
// Column types follow the driver's Go types: numeric kinds become
// numeric columns, strings and byte slices become categorical, NULLs
// become missing cells.
func (s *Source) Load(ctx context.Context) (*table.Table, error) {
	rows, err := s.db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, apperrors.SourceError("sql", err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, apperrors.SourceError("sql", err)
	}

	var scanned []map[string]any
	for rows.Next() {
		m := make(map[string]any, len(headers))
		if err := rows.MapScan(m); err != nil {
			return nil, apperrors.SourceError("sql", err)
		}
		scanned = append(scanned, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.SourceError("sql", err)
	}

	t, err := table.FromRows(s.name, headers, scanned)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build table from query result")
	}
	s.logger.Info("[SQLSource] loaded %q (%d columns, %d rows)", s.name, len(t.Schema()), t.Len())
	return t, nil
}
