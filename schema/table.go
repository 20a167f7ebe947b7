package schema

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Table names a backing table and its primary key column.
type Table struct {
	Name       string
	PrimaryKey string
}

// TableName returns the table name.
func (t Table) TableName() string {
	return t.Name
}

// KeyName returns the primary key column name.
func (t Table) KeyName() string {
	return t.PrimaryKey
}

// TableOf resolves the table of a bun model from its struct tags. For
// composite keys the first primary key column is reported.
func TableOf(db *bun.DB, model any) (Table, error) {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return Table{}, errors.Errorf("schema: model must be a struct, got %T", model)
	}

	t := db.Table(typ)
	table := Table{Name: t.Name}
	if len(t.PKs) > 0 {
		table.PrimaryKey = t.PKs[0].Name
	}
	return table, nil
}
