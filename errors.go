package sqlz

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrInvalidArgument is the root of all argument errors. Argument
// errors are returned before any statement is executed.
var ErrInvalidArgument = errors.New("sqlz: invalid argument")

// Argument errors returned by the statement builders
var (
	ErrNoInsertData  = fmt.Errorf("%w: no data to insert", ErrInvalidArgument)
	ErrNoValueRows   = fmt.Errorf("%w: columns provided without value rows", ErrInvalidArgument)
	ErrMixedInsert   = fmt.Errorf("%w: both rows and columns/values provided", ErrInvalidArgument)
	ErrColumnCount   = fmt.Errorf("%w: values do not match columns", ErrInvalidArgument)
	ErrNoAssignments = fmt.Errorf("%w: no columns to update", ErrInvalidArgument)
)

// ErrorKind classifies database-layer failures
type ErrorKind int

// KindOther is any database failure not classified otherwise
// KindConstraint is a constraint violation (unique, foreign key, check, not null)
// KindConnection is a connectivity failure
// KindSyntax is an SQL syntax or access rule violation
const (
	KindOther ErrorKind = iota
	KindConstraint
	KindConnection
	KindSyntax
)

// String returns the name of the kind
func (k ErrorKind) String() string {
	return []string{"other", "constraint", "connection", "syntax"}[int(k)]
}

// DBError is a database-layer failure: an error returned by the driver
// while beginning, committing or rolling back a transaction, or while
// preparing or executing a statement.
type DBError struct {
	// Op is the operation that failed ("exec", "query", "commit", ...)
	Op string
	// SQL is the statement being executed, if any
	SQL string
	// Err is the driver's error
	Err error
}

// Error implements the error interface
func (e *DBError) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("sqlz: %s %q: %s", e.Op, e.SQL, e.Err)
	}
	return fmt.Sprintf("sqlz: %s: %s", e.Op, e.Err)
}

// Unwrap returns the driver's error
func (e *DBError) Unwrap() error {
	return e.Err
}

// Kind classifies the driver's error
func (e *DBError) Kind() ErrorKind {
	return classify(e.Err)
}

// PostgreSQL SQLSTATE classes
const (
	pgClassConnection = "08"
	pgClassConstraint = "23"
	pgClassSyntax     = "42"
)

// MySQL error numbers
const (
	mysqlNotNull          = 1048
	mysqlDuplicateEntry   = 1062
	mysqlSyntax           = 1064
	mysqlForeignKeyParent = 1451
	mysqlForeignKeyChild  = 1452
	mysqlCheckConstraint  = 3819
)

func classify(err error) ErrorKind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code.Class()) {
		case pgClassConstraint:
			return KindConstraint
		case pgClassConnection:
			return KindConnection
		case pgClassSyntax:
			return KindSyntax
		}
		return KindOther
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlNotNull, mysqlDuplicateEntry, mysqlForeignKeyParent, mysqlForeignKeyChild, mysqlCheckConstraint:
			return KindConstraint
		case mysqlSyntax:
			return KindSyntax
		}
		return KindOther
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// extended result codes keep the primary code in the lowest byte
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return KindConstraint
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
			return KindConnection
		}
		return KindOther
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindConnection
	}

	return KindOther
}

// isDatabaseError reports whether the error itself (not its chain) is a
// database-layer failure
func isDatabaseError(err error) bool {
	switch err.(type) {
	case *DBError, *pq.Error, *mysql.MySQLError, *sqlite.Error:
		return true
	}
	return err == driver.ErrBadConn || err == sql.ErrConnDone || err == sql.ErrTxDone || err == mysql.ErrInvalidConn
}

// IsDatabaseError reports whether a database-layer failure exists
// anywhere in the error's chain
func IsDatabaseError(err error) bool {
	return err != nil && isDatabaseError(databaseCause(err))
}

// databaseCause peels wrapper errors until it reaches a database-layer
// failure, which is returned as-is. If the chain holds no such failure,
// the original error is returned.
func databaseCause(err error) error {
	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		if isDatabaseError(cause) {
			return cause
		}
	}
	return err
}
