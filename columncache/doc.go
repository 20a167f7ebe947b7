// Package columncache keeps the sorted column names of database tables in a
// cache store so that schema introspection runs once per table.
//
// Entries are stored under "relation_schema-<table>" and never expire. The
// only way to recompute a listing is Invalidate (or Flush for every table).
// The primary key is always part of the cached listing and is filtered out on
// read when the caller asks for it.
//
//	cols := columncache.New(store, schema.NewBunInspector(db))
//	names, err := cols.Columns(ctx, schema.Table{Name: "users", PrimaryKey: "id"}, false)
//
// A ColumnCache holds no lock. Two goroutines populating the same table at
// the same time both introspect and the last write wins, which is harmless
// because both write the same listing.
package columncache
