package schema

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Inspector lists the columns of a table in declaration order.
// Failures are reported as *LookupError.
type Inspector interface {
	ListColumns(ctx context.Context, table string) ([]string, error)
}

// InspectorFunc adapts a function to Inspector.
type InspectorFunc func(ctx context.Context, table string) ([]string, error)

func (f InspectorFunc) ListColumns(ctx context.Context, table string) ([]string, error) {
	return f(ctx, table)
}

const (
	sqliteColumnsQuery = `SELECT name FROM pragma_table_info(?) ORDER BY cid`

	pgColumnsQuery = `SELECT column_name FROM information_schema.columns ` +
		`WHERE table_schema = current_schema() AND table_name = ? ORDER BY ordinal_position`

	pgQualifiedColumnsQuery = `SELECT column_name FROM information_schema.columns ` +
		`WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position`

	mysqlColumnsQuery = `SELECT column_name FROM information_schema.columns ` +
		`WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position`
)

// BunInspector lists columns through the catalog of the database behind a bun.DB.
type BunInspector struct {
	db     *bun.DB
	logger zerolog.Logger
}

// InspectorOption configures a BunInspector.
type InspectorOption func(*BunInspector)

// WithInspectorLogger sets the logger used for query tracing.
func WithInspectorLogger(logger zerolog.Logger) InspectorOption {
	return func(i *BunInspector) {
		i.logger = logger
	}
}

// NewBunInspector returns an Inspector for SQLite, PostgreSQL and MySQL databases.
func NewBunInspector(db *bun.DB, opts ...InspectorOption) *BunInspector {
	i := &BunInspector{db: db, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ListColumns returns the column names of table in declaration order.
// An empty listing means the table does not exist.
func (i *BunInspector) ListColumns(ctx context.Context, table string) ([]string, error) {
	query, args, err := i.columnsQuery(table)
	if err != nil {
		return nil, NewLookupError(table, err)
	}

	i.logger.Debug().
		Str("dialect", i.db.Dialect().Name().String()).
		Str("table", table).
		Msg("listing table columns")

	var columns []string
	if err := i.db.NewRaw(query, args...).Scan(ctx, &columns); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, NewLookupError(table, errors.Wrap(err, "query columns"))
	}

	if len(columns) == 0 {
		return nil, NewLookupError(table, ErrTableNotFound)
	}
	return columns, nil
}

func (i *BunInspector) columnsQuery(table string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, ErrTableNotFound
	}

	switch name := i.db.Dialect().Name(); name {
	case dialect.SQLite:
		return sqliteColumnsQuery, []any{table}, nil
	case dialect.PG:
		if schemaName, tableName, ok := strings.Cut(table, "."); ok {
			return pgQualifiedColumnsQuery, []any{schemaName, tableName}, nil
		}
		return pgColumnsQuery, []any{table}, nil
	case dialect.MySQL:
		return mysqlColumnsQuery, []any{table}, nil
	default:
		return "", nil, errors.Wrap(ErrUnsupportedDialect, name.String())
	}
}
