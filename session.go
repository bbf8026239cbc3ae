package sqlz

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Conn is implemented by *DB and *Session, and is accepted by the
// generic query functions
type Conn interface {
	session() *Session
}

// rollbackFlag is shared by all sessions of one outermost transaction
type rollbackFlag struct {
	requested bool
}

// Session is a transaction context. Every top-level call on a DB
// creates one, and every nested call to Transactional derives a child
// session one level deeper, sharing the connection and rollback flag of
// its parent. Only the outermost transactional session (level 1) begins,
// commits or rolls back a transaction; deeper levels run inline.
//
// A Session must not outlive the call it was passed to, and must not
// be shared between goroutines.
type Session struct {
	db       *DB
	ext      Ext
	saved    Ext
	tx       *sqlx.Tx
	level    int
	rollback *rollbackFlag
}

func (db *DB) session() *Session {
	return &Session{
		db:       db,
		ext:      db.DB,
		rollback: &rollbackFlag{},
	}
}

func (s *Session) session() *Session {
	return s
}

// Level returns the session's transaction nesting level. Zero means no
// transaction is in progress.
func (s *Session) Level() int {
	return s.level
}

// InTransaction reports whether statements run inside a transaction
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// Ext returns the executor statements of this session run on, for use
// with sqlx directly
func (s *Session) Ext() Ext {
	return s.ext
}

// SetRollbackOnly requests that the outermost transaction be rolled
// back instead of committed once it completes. It can be called at any
// nesting level.
func (s *Session) SetRollbackOnly() {
	s.rollback.requested = true
}

// Transactional runs the provided function inside a transaction. The
// function must receive an sqlz Session object, and return an error. If
// the function returns an error (or panics), or SetRollbackOnly was
// called, the transaction is automatically rolled back. Otherwise, the
// transaction is committed.
func (db *DB) Transactional(ctx context.Context, f func(s *Session) error) error {
	return db.session().Transactional(ctx, f)
}

// Transactional runs the provided function in a child session. If this
// session is not in a transaction, a transaction is started, and is
// committed or rolled back after the function returns (see
// DB.Transactional). Otherwise the function runs as part of the
// existing transaction, which remains the outer call's responsibility.
//
// Errors that wrap a database-layer failure (see DBError) are unwrapped
// to that failure by the outermost call.
func (s *Session) Transactional(ctx context.Context, f func(s *Session) error) error {
	child := &Session{
		db:       s.db,
		ext:      s.ext,
		tx:       s.tx,
		level:    s.level + 1,
		rollback: s.rollback,
	}

	if child.level > 1 {
		return f(child)
	}

	return child.run(ctx, f)
}

func (s *Session) run(ctx context.Context, f func(s *Session) error) (err error) {
	s.saved = s.ext

	tx, err := s.db.BeginTxx(ctx, s.db.txOptions)
	if err != nil {
		return s.db.fail(ctx, &DBError{Op: "begin", Err: err})
	}

	s.tx, s.ext = tx, tx
	s.db.logger.DebugContext(ctx, "sqlz: transaction started")

	defer func() {
		s.rollback.requested = false
		s.tx, s.ext = nil, s.saved
	}()

	defer func() {
		if p := recover(); p != nil {
			s.rollbackTx(ctx, tx)
			panic(p)
		}
	}()

	if err = f(s); err != nil {
		s.rollbackTx(ctx, tx)
		return databaseCause(err)
	}

	if s.rollback.requested {
		return s.rollbackTx(ctx, tx)
	}

	if err = tx.Commit(); err != nil {
		return s.db.fail(ctx, &DBError{Op: "commit", Err: err})
	}

	s.db.logger.DebugContext(ctx, "sqlz: transaction committed")

	return nil
}

func (s *Session) rollbackTx(ctx context.Context, tx *sqlx.Tx) error {
	if err := tx.Rollback(); err != nil {
		return s.db.fail(ctx, &DBError{Op: "rollback", Err: err})
	}

	s.db.logger.DebugContext(ctx, "sqlz: transaction rolled back")

	return nil
}

func (s *Session) maybeTransactional(ctx context.Context, o Options, f func(s *Session) error) error {
	if o.RunInTransaction {
		return s.Transactional(ctx, f)
	}
	return f(s)
}
