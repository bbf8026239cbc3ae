package sqlz

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Row is a queried row, mapping column names to values as returned by
// the driver
type Row = map[string]interface{}

// Execute prepares the statement once and executes it with every group
// of parameters, in order, returning one update count per group. With
// no groups, the statement is executed once without parameters. Unless
// disabled with Transaction(false), execution is transactional.
func (s *Session) Execute(ctx context.Context, query string, groups [][]interface{}, opts ...Option) (counts []int64, err error) {
	err = s.maybeTransactional(ctx, newOptions(opts), func(s *Session) (err error) {
		counts, err = s.execute(ctx, query, groups)
		return err
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// ExecuteReturningKeys executes the statement with the provided
// parameters, and returns the generated key of the inserted row. If the
// driver does not support generated keys (see DB.SupportsGeneratedKeys),
// the update count is returned instead.
func (s *Session) ExecuteReturningKeys(ctx context.Context, query string, args []interface{}, opts ...Option) (key int64, err error) {
	err = s.maybeTransactional(ctx, newOptions(opts), func(s *Session) (err error) {
		key, err = s.executeReturningKeys(ctx, query, args)
		return err
	})
	if err != nil {
		return 0, err
	}
	return key, nil
}

// Query executes a SELECT statement and loads all resulting rows
func (s *Session) Query(ctx context.Context, stmt SQLStmt, opts ...Option) ([]Row, error) {
	return QueryMap(ctx, s, stmt, func(row Row) (Row, error) { return row, nil }, opts...)
}

// GetRow executes the statement and loads the first result into the
// provided variable (which may be a simple variable if only one column
// was selected, or a struct if multiple columns were selected).
func (s *Session) GetRow(ctx context.Context, into interface{}, stmt SQLStmt, opts ...Option) error {
	asSQL, bindings := stmt.ToSQL(true)
	return s.maybeTransactional(ctx, newOptions(opts), func(s *Session) error {
		asSQL := s.ext.Rebind(asSQL)
		if err := sqlx.GetContext(ctx, s.ext, into, asSQL, bindings...); err != nil {
			return s.db.fail(ctx, &DBError{Op: "query", SQL: asSQL, Err: err})
		}
		return nil
	})
}

// GetAll executes the statement and loads all the results into the
// provided slice variable.
func (s *Session) GetAll(ctx context.Context, into interface{}, stmt SQLStmt, opts ...Option) error {
	asSQL, bindings := stmt.ToSQL(true)
	return s.maybeTransactional(ctx, newOptions(opts), func(s *Session) error {
		asSQL := s.ext.Rebind(asSQL)
		if err := sqlx.SelectContext(ctx, s.ext, into, asSQL, bindings...); err != nil {
			return s.db.fail(ctx, &DBError{Op: "query", SQL: asSQL, Err: err})
		}
		return nil
	})
}

// InsertRows inserts data into the provided table. In row form, every
// row is inserted with its own statement and its generated key (or
// update count, see ExecuteReturningKeys) is returned. In column/values
// form, the update counts of the single multi-row statement are
// returned. Argument errors are returned before anything is executed.
func (s *Session) InsertRows(ctx context.Context, table Identifier, data InsertData, opts ...Option) (results []int64, err error) {
	o := newOptions(opts)

	stmts, err := Builder{Quote: o.Quote}.Insert(table, data)
	if err != nil {
		return nil, err
	}

	err = s.maybeTransactional(ctx, o, func(s *Session) error {
		if len(data.Rows) == 0 {
			counts, err := s.execute(ctx, stmts[0].SQL, [][]interface{}{stmts[0].Args})
			results = counts
			return err
		}

		for _, stmt := range stmts {
			key, err := s.executeReturningKeys(ctx, stmt.SQL, stmt.Args)
			if err != nil {
				return err
			}
			results = append(results, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// UpdateRows updates the rows of the table matching the predicate,
// returning the update counts
func (s *Session) UpdateRows(ctx context.Context, table Identifier, set Map, where Predicate, opts ...Option) ([]int64, error) {
	o := newOptions(opts)

	stmt, err := Builder{Quote: o.Quote}.Update(table, set, where)
	if err != nil {
		return nil, err
	}

	return s.Execute(ctx, stmt.SQL, [][]interface{}{stmt.Args}, opts...)
}

// DeleteRows deletes the rows of the table matching the predicate,
// returning the update counts
func (s *Session) DeleteRows(ctx context.Context, table Identifier, where Predicate, opts ...Option) ([]int64, error) {
	o := newOptions(opts)
	stmt := Builder{Quote: o.Quote}.Delete(table, where)
	return s.Execute(ctx, stmt.SQL, [][]interface{}{stmt.Args}, opts...)
}

// QueryMap executes a SELECT statement, and maps every resulting row
// with the provided function
func QueryMap[T any](ctx context.Context, conn Conn, stmt SQLStmt, mapRow func(Row) (T, error), opts ...Option) ([]T, error) {
	return QueryWrap(ctx, conn, stmt, mapRow, func(rows []T) ([]T, error) { return rows, nil }, opts...)
}

// QueryWrap executes a SELECT statement, maps every resulting row with
// mapRow, and passes the mapped rows to wrap, returning its result. Rows
// are always loaded in full before wrap is called.
func QueryWrap[T, R any](ctx context.Context, conn Conn, stmt SQLStmt, mapRow func(Row) (T, error), wrap func([]T) (R, error), opts ...Option) (result R, err error) {
	o := newOptions(opts)

	err = conn.session().maybeTransactional(ctx, o, func(s *Session) error {
		rows, err := s.query(ctx, stmt, o.Keys)
		if err != nil {
			return err
		}

		mapped := make([]T, 0, len(rows))
		for _, row := range rows {
			item, err := mapRow(row)
			if err != nil {
				return err
			}
			mapped = append(mapped, item)
		}

		result, err = wrap(mapped)
		return err
	})

	return result, err
}

func (s *Session) execute(ctx context.Context, query string, groups [][]interface{}) ([]int64, error) {
	query = s.ext.Rebind(query)

	s.db.logger.DebugContext(ctx, "sqlz: execute", "sql", query, "groups", len(groups), "level", s.level)

	stmt, err := s.ext.PreparexContext(ctx, query)
	if err != nil {
		return nil, s.db.fail(ctx, &DBError{Op: "prepare", SQL: query, Err: err})
	}
	defer stmt.Close()

	if len(groups) == 0 {
		groups = [][]interface{}{nil}
	}

	counts := make([]int64, 0, len(groups))
	for _, args := range groups {
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return nil, s.db.fail(ctx, &DBError{Op: "exec", SQL: query, Err: err})
		}

		count, err := res.RowsAffected()
		if err != nil {
			return nil, s.db.fail(ctx, &DBError{Op: "rows affected", SQL: query, Err: err})
		}

		counts = append(counts, count)
	}

	return counts, nil
}

func (s *Session) executeReturningKeys(ctx context.Context, query string, args []interface{}) (int64, error) {
	query = s.ext.Rebind(query)

	s.db.logger.DebugContext(ctx, "sqlz: execute returning keys", "sql", query, "args", args, "level", s.level)

	res, err := s.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.db.fail(ctx, &DBError{Op: "exec", SQL: query, Err: err})
	}

	if s.db.generatedKeys {
		key, err := res.LastInsertId()
		if err == nil {
			return key, nil
		}
		// some drivers only find out at execution time
		s.db.logger.DebugContext(ctx, "sqlz: generated keys unavailable, returning update count", "sql", query, "error", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, s.db.fail(ctx, &DBError{Op: "rows affected", SQL: query, Err: err})
	}

	return count, nil
}

func (s *Session) query(ctx context.Context, stmt SQLStmt, keys Quoter) ([]Row, error) {
	asSQL, bindings := stmt.ToSQL(true)
	asSQL = s.ext.Rebind(asSQL)

	s.db.logger.DebugContext(ctx, "sqlz: query", "sql", asSQL, "args", bindings, "level", s.level)

	prepared, err := s.ext.PreparexContext(ctx, asSQL)
	if err != nil {
		return nil, s.db.fail(ctx, &DBError{Op: "prepare", SQL: asSQL, Err: err})
	}
	defer prepared.Close()

	rows, err := prepared.QueryxContext(ctx, bindings...)
	if err != nil {
		return nil, s.db.fail(ctx, &DBError{Op: "query", SQL: asSQL, Err: err})
	}
	defer rows.Close()

	var results []Row
	for rows.Next() {
		row := make(Row)
		if err := rows.MapScan(row); err != nil {
			return nil, s.db.fail(ctx, &DBError{Op: "scan", SQL: asSQL, Err: err})
		}
		if keys != nil {
			renamed := make(Row, len(row))
			for col, val := range row {
				renamed[keys(col)] = val
			}
			row = renamed
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, s.db.fail(ctx, &DBError{Op: "query", SQL: asSQL, Err: err})
	}

	return results, nil
}

// Execute runs Session.Execute in a new session
func (db *DB) Execute(ctx context.Context, query string, groups [][]interface{}, opts ...Option) ([]int64, error) {
	return db.session().Execute(ctx, query, groups, opts...)
}

// ExecuteReturningKeys runs Session.ExecuteReturningKeys in a new session
func (db *DB) ExecuteReturningKeys(ctx context.Context, query string, args []interface{}, opts ...Option) (int64, error) {
	return db.session().ExecuteReturningKeys(ctx, query, args, opts...)
}

// Query runs Session.Query in a new session
func (db *DB) Query(ctx context.Context, stmt SQLStmt, opts ...Option) ([]Row, error) {
	return db.session().Query(ctx, stmt, opts...)
}

// GetRow runs Session.GetRow in a new session
func (db *DB) GetRow(ctx context.Context, into interface{}, stmt SQLStmt, opts ...Option) error {
	return db.session().GetRow(ctx, into, stmt, opts...)
}

// GetAll runs Session.GetAll in a new session
func (db *DB) GetAll(ctx context.Context, into interface{}, stmt SQLStmt, opts ...Option) error {
	return db.session().GetAll(ctx, into, stmt, opts...)
}

// InsertRows runs Session.InsertRows in a new session
func (db *DB) InsertRows(ctx context.Context, table Identifier, data InsertData, opts ...Option) ([]int64, error) {
	return db.session().InsertRows(ctx, table, data, opts...)
}

// UpdateRows runs Session.UpdateRows in a new session
func (db *DB) UpdateRows(ctx context.Context, table Identifier, set Map, where Predicate, opts ...Option) ([]int64, error) {
	return db.session().UpdateRows(ctx, table, set, where, opts...)
}

// DeleteRows runs Session.DeleteRows in a new session
func (db *DB) DeleteRows(ctx context.Context, table Identifier, where Predicate, opts ...Option) ([]int64, error) {
	return db.session().DeleteRows(ctx, table, where, opts...)
}
