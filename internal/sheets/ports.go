// Package sheets defines the bulk-load port: any source able to
// produce a column-named table for wholesale ledger replacement.
package sheets

import (
	"context"

	"ledger/internal/core"
)

// RowSource fetches an external table whose first concern is schema
// conformance; the ledger validates it before adopting anything.
type RowSource interface {
	FetchTable(ctx context.Context) (core.Table, error)
}
