// Package schema lists table columns from the database catalog.
//
// BunInspector issues one catalog query per call and does no caching of its
// own; wrap it with columncache.ColumnCache to memoize listings.
//
//	db, err := schema.Open(schema.DriverSQLite, "file::memory:?cache=shared")
//	inspector := schema.NewBunInspector(db)
//	columns, err := inspector.ListColumns(ctx, "users")
//
// Supported dialects are SQLite, PostgreSQL (optionally with "schema.table"
// names) and MySQL. A table without columns is reported as missing, wrapped in
// a *LookupError together with every other introspection failure.
package schema
