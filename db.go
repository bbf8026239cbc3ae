package sqlz

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Ext is the executor a Session runs statements on, implemented by both
// *sqlx.DB (autocommit) and *sqlx.Tx
type Ext interface {
	sqlx.ExtContext
	PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
}

var (
	_ Ext = (*sqlx.DB)(nil)
	_ Ext = (*sqlx.Tx)(nil)
)

// DB is a wrapper around sqlx.DB (which is a wrapper around sql.DB).
// It is the connection handle from which every top-level call derives
// its own Session.
type DB struct {
	*sqlx.DB

	// ErrHandlers is a list of error handler functions, called with
	// every database-layer failure
	ErrHandlers []func(err error)

	logger        *slog.Logger
	generatedKeys bool
	txOptions     *sql.TxOptions
}

// DBOption configures a DB
type DBOption func(*DB)

// WithLogger sets the logger statements and transactions are logged to
// (at debug level). By default nothing is logged.
func WithLogger(logger *slog.Logger) DBOption {
	return func(db *DB) {
		db.logger = logger
	}
}

// WithGeneratedKeys overrides whether the driver supports reading
// generated keys (sql.Result.LastInsertId). By default this is derived
// from the driver name: PostgreSQL, SQL Server and Oracle drivers don't,
// others do. A driver that turns out not to support them at execution
// time gets update counts all the same.
func WithGeneratedKeys(supported bool) DBOption {
	return func(db *DB) {
		db.generatedKeys = supported
	}
}

// WithErrHandler adds an error handler function
func WithErrHandler(handler func(err error)) DBOption {
	return func(db *DB) {
		db.ErrHandlers = append(db.ErrHandlers, handler)
	}
}

// WithTxOptions sets the options transactions are started with
func WithTxOptions(opts *sql.TxOptions) DBOption {
	return func(db *DB) {
		db.txOptions = opts
	}
}

// New creates a new DB instance from an underlying sql.DB object.
// It requires the name of the SQL driver in order to use the correct
// placeholders when executing statements
func New(db *sql.DB, driverName string, opts ...DBOption) *DB {
	return Newx(sqlx.NewDb(db, driverName), opts...)
}

// Newx creates a new DB instance from an underlying sqlx.DB object
func Newx(db *sqlx.DB, opts ...DBOption) *DB {
	dbz := &DB{
		DB:            db,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		generatedKeys: supportsGeneratedKeys(db.DriverName()),
	}
	for _, opt := range opts {
		opt(dbz)
	}
	return dbz
}

// supportsGeneratedKeys probes generated key support once per backend.
// Question mark drivers (MySQL, SQLite) implement LastInsertId, while
// PostgreSQL ($1), SQL Server (@p1) and Oracle (:name) drivers require
// RETURNING or OUTPUT clauses instead.
func supportsGeneratedKeys(driverName string) bool {
	switch sqlx.BindType(driverName) {
	case sqlx.DOLLAR, sqlx.AT, sqlx.NAMED:
		return false
	}
	// sqlx doesn't know the older SQL Server driver name
	return driverName != "mssql"
}

// SupportsGeneratedKeys reports whether ExecuteReturningKeys returns
// generated keys rather than update counts
func (db *DB) SupportsGeneratedKeys() bool {
	return db.generatedKeys
}

// HandleError receives an error value, and executes all of the
// error handlers with it. The error is returned as-is.
func (db *DB) HandleError(err error) error {
	for _, handler := range db.ErrHandlers {
		handler(err)
	}
	return err
}

func (db *DB) fail(ctx context.Context, err *DBError) error {
	db.logger.DebugContext(ctx, "sqlz: database failure", "op", err.Op, "sql", err.SQL, "kind", err.Kind().String(), "error", err.Err)
	return db.HandleError(err)
}
