package columncache

import "context"

// TableColumns is a ColumnCache bound to one table.
type TableColumns struct {
	cache *ColumnCache
	table Table
}

// For binds c to table.
func For(c *ColumnCache, table Table) TableColumns {
	return TableColumns{cache: c, table: table}
}

// Columns returns the sorted column names of the bound table.
func (t TableColumns) Columns(ctx context.Context, withPK bool) ([]string, error) {
	return t.cache.Columns(ctx, t.table, withPK)
}

// Reset invalidates the bound table's listing.
func (t TableColumns) Reset(ctx context.Context) error {
	return t.cache.Invalidate(ctx, t.table)
}
