// Package sqlz (pronounced "sequelize") is an un-opinionated, un-obtrusive SQL
// statement builder for Go projects, based on github.com/jmoiron/sqlx, with an
// execution layer that absorbs nested transactions.
//
// Statement builders are pure functions. Select, Insert, Update and Delete
// return an Stmt: the exact SQL text and the ordered list of values to bind to
// its question mark placeholders. Clauses (Where, Join, OrderBy) are small
// values that can be passed around and composed. Predicates and assignments are
// given as a Map, an ordered mapping, so the order of generated conditions is
// always the order in which they were given.
//
// Identifiers are rendered through a Quoter, applied to every dot-separated
// segment. Use a Builder to quote a whole statement:
//
//	b := sqlz.NewBuilder(sqlz.Quote(sqlz.Backticks))
//	stmt := b.Select(sqlz.Cols("id", "name"), sqlz.As("users", "u"),
//		sqlz.Where(sqlz.Map{sqlz.KV("u.id", 42)}),
//		sqlz.OrderBy(sqlz.Desc("name")),
//	)
//	// SELECT `id`,`name` FROM `users` `u` WHERE `u`.`id` = ? ORDER BY `name` DESC
//
// sqlz does not create database connections. Wrap your existing `*sql.DB` or
// `*sqlx.DB` with New or Newx, and execute statements through it:
//
//	db := sqlz.New(sqlDB, "mysql")
//	keys, err := db.InsertRows(ctx, sqlz.Ident("users"), sqlz.Rows(
//		sqlz.Map{sqlz.KV("name", "one")},
//		sqlz.Map{sqlz.KV("name", "two")},
//	))
//
// Every execution method runs in a transaction by default (see the Transaction
// option). Transactions nest: DB.Transactional passes a Session to its function,
// and any transactional call made through that Session, at any depth, becomes
// part of the same transaction. Only the outermost call commits, or rolls back
// if its function failed or SetRollbackOnly was called anywhere below it.
//
//	err := db.Transactional(ctx, func(s *sqlz.Session) error {
//		if _, err := s.DeleteRows(ctx, sqlz.Ident("carts"), sqlz.Where(sqlz.Map{sqlz.KV("user_id", 1)})); err != nil {
//			return err
//		}
//		return s.Transactional(ctx, func(s *sqlz.Session) error {
//			_, err := s.UpdateRows(ctx, sqlz.Ident("users"), sqlz.Map{sqlz.KV("cart", nil)}, sqlz.Where(sqlz.Map{sqlz.KV("id", 1)}))
//			return err
//		})
//	})
//
// Failures are either argument errors (see ErrInvalidArgument), returned before
// anything is executed, or database-layer failures (see DBError), returned after
// the transaction was rolled back.
package sqlz
