package schema

import (
	"database/sql"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	bunschema "github.com/uptrace/bun/schema"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Open connects to dsn with driver and wraps the pool in a bun.DB using the
// matching dialect.
func Open(driver, dsn string) (*bun.DB, error) {
	var d bunschema.Dialect
	switch driver {
	case DriverSQLite:
		d = sqlitedialect.New()
	case DriverPostgres:
		d = pgdialect.New()
	case DriverMySQL:
		d = mysqldialect.New()
	default:
		return nil, errors.Wrap(ErrUnsupportedDriver, driver)
	}

	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}

	// every connection to an in-memory sqlite database sees a different database
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		sqldb.SetMaxOpenConns(1)
	}

	return bun.NewDB(sqldb, d), nil
}
