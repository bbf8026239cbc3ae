package sqlz

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"postgres unique violation", &pq.Error{Code: "23505"}, KindConstraint},
		{"postgres foreign key violation", &pq.Error{Code: "23503"}, KindConstraint},
		{"postgres connection failure", &pq.Error{Code: "08006"}, KindConnection},
		{"postgres syntax error", &pq.Error{Code: "42601"}, KindSyntax},
		{"postgres division by zero", &pq.Error{Code: "22012"}, KindOther},
		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062}, KindConstraint},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, KindConstraint},
		{"mysql syntax error", &mysql.MySQLError{Number: 1064}, KindSyntax},
		{"mysql lock timeout", &mysql.MySQLError{Number: 1205}, KindOther},
		{"mysql invalid connection", mysql.ErrInvalidConn, KindConnection},
		{"bad connection", driver.ErrBadConn, KindConnection},
		{"connection done", sql.ErrConnDone, KindConnection},
		{"wrapped", fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"}), KindConstraint},
		{"unknown", errors.New("something"), KindOther},
	}

	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			dbErr := &DBError{Op: "exec", Err: tst.err}
			assert.Equal(t, tst.expected, dbErr.Kind(), "kind is %s", dbErr.Kind())
		})
	}
}

func TestDatabaseCause(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Message: "duplicate"}
	dbErr := &DBError{Op: "exec", SQL: "INSERT INTO t ( a ) VALUES ( ? )", Err: pqErr}
	plain := errors.New("plain")

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"wrapped database error", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", dbErr)), dbErr},
		{"database error is not unwrapped", dbErr, dbErr},
		{"wrapped driver error", fmt.Errorf("outer: %w", pqErr), pqErr},
		{"wrapped bad connection", fmt.Errorf("outer: %w", driver.ErrBadConn), driver.ErrBadConn},
		{"non-database error", plain, plain},
		{"nil", nil, nil},
	}

	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			assert.Equal(t, tst.expected, databaseCause(tst.err))
		})
	}

	wrappedPlain := fmt.Errorf("outer: %w", plain)
	assert.Equal(t, wrappedPlain, databaseCause(wrappedPlain))

	assert.True(t, IsDatabaseError(fmt.Errorf("outer: %w", dbErr)))
	assert.True(t, IsDatabaseError(pqErr))
	assert.False(t, IsDatabaseError(wrappedPlain))
	assert.False(t, IsDatabaseError(ErrColumnCount))
	assert.False(t, IsDatabaseError(nil))
}

func TestDBErrorMessage(t *testing.T) {
	err := &DBError{Op: "exec", SQL: "DELETE FROM t", Err: errors.New("locked")}
	assert.Equal(t, `sqlz: exec "DELETE FROM t": locked`, err.Error())

	err = &DBError{Op: "commit", Err: errors.New("locked")}
	assert.Equal(t, "sqlz: commit: locked", err.Error())
	assert.Equal(t, "constraint", KindConstraint.String())
}
