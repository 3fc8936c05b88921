package ports

import (
	"context"

	"longeda/domain/table"
)

// TableSource loads a dataset into an immutable in-memory table.
// Implementations exist for CSV files, Excel workbooks, and SQL
// queries; the analyzers never perform I/O themselves.
type TableSource interface {
	Load(ctx context.Context) (*table.Table, error)
}
