package sqlz

import "testing"

func TestSelect(t *testing.T) {
	backticks := NewBuilder(Quote(Backticks))

	runTests(t, []test{
		{
			"simple select all",
			Select(Star, Ident("table")),
			"SELECT * FROM table",
			[]interface{}{},
		},

		{
			"select without columns",
			Select(nil, Ident("table")),
			"SELECT * FROM table",
			[]interface{}{},
		},

		{
			"select columns",
			Select(Cols("id", "name"), Ident("table")),
			"SELECT id,name FROM table",
			[]interface{}{},
		},

		{
			"select aliased column",
			Select([]Identifier{As("id", "foo"), Ident("name")}, Ident("table")),
			"SELECT id AS foo,name FROM table",
			[]interface{}{},
		},

		{
			"select from aliased table",
			Select(Cols("t.id"), As("table", "t")),
			"SELECT t.id FROM table t",
			[]interface{}{},
		},

		{
			"select with where clause in caller order",
			Select(Star, Ident("a"), Where(Map{KV("c", 3), KV("b", 2)})),
			"SELECT * FROM a WHERE c = ? AND b = ?",
			[]interface{}{3, 2},
		},

		{
			"select with empty where clause",
			Select(Star, Ident("a"), Where(nil)),
			"SELECT * FROM a",
			[]interface{}{},
		},

		{
			"select with multiple where clauses",
			Select(Star, Ident("a"), Where(Map{KV("b", 2)}), Where(Map{KV("c", nil)})),
			"SELECT * FROM a WHERE b = ? AND c IS NULL",
			[]interface{}{2},
		},

		{
			"select with joins",
			Select(Star, Ident("a"),
				Join(Ident("b"), On{"a.id", "b.a_id"}),
				Join(As("c", "x"), On{"x.id", "a.c_id"}, On{"x.k", "a.k"}),
			),
			"SELECT * FROM a JOIN b ON a.id = b.a_id JOIN c x ON x.id = a.c_id AND x.k = a.k",
			[]interface{}{},
		},

		{
			"select with typed join",
			Select(Star, Ident("a"), Join(Ident("b"), On{"a.id", "b.a_id"}).As(LeftJoin)),
			"SELECT * FROM a LEFT JOIN b ON a.id = b.a_id",
			[]interface{}{},
		},

		{
			"select with join, where and ordering",
			Select(Cols("a.id", "b.name"), Ident("a"),
				Join(Ident("b"), On{"a.id", "b.a_id"}),
				Where(Map{KV("a.x", "y")}),
				OrderBy(Desc("b.name"), Asc("a.id")),
			),
			"SELECT a.id,b.name FROM a JOIN b ON a.id = b.a_id WHERE a.x = ? ORDER BY b.name DESC,a.id ASC",
			[]interface{}{"y"},
		},

		{
			"select with quoted identifiers",
			backticks.Select(Cols("t.id"), Ident("t"), Where(Map{KV("t.id", 1)}), OrderBy(Asc("t.id"))),
			"SELECT `t`.`id` FROM `t` WHERE `t`.`id` = ? ORDER BY `t`.`id` ASC",
			[]interface{}{1},
		},

		{
			"select all with quoted identifiers",
			backticks.Select(Cols("*", "t.*"), As("table", "t"), Join(Ident("u"), On{"u.id", "t.u_id"})),
			"SELECT *,`t`.* FROM `table` `t` JOIN `u` ON `u`.`id` = `t`.`u_id`",
			[]interface{}{},
		},

		{
			"clauses keep their own quoter",
			Select(Star, Ident("t"), NewBuilder(Quote(DoubleQuotes)).Where(Map{KV("id", 1)})),
			`SELECT * FROM t WHERE "id" = ?`,
			[]interface{}{1},
		},

		{
			"select with lower-cased identifiers",
			NewBuilder(Quote(Lower)).Select(Cols("ID", "Name"), Ident("Users"), Where(Map{KV("ID", 5)})),
			"SELECT id,name FROM users WHERE id = ?",
			[]interface{}{5},
		},
	})
}

func TestClauses(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		expected string
	}{
		{"order by", OrderBy(Desc("a"), Asc("b")).ToSQL(), "ORDER BY a DESC,b ASC"},
		{"order by single", OrderBy(Asc("a")).ToSQL(), "ORDER BY a ASC"},
		{"empty order by", OrderBy().ToSQL(), ""},
		{"order column", Desc("a").ToSQL(), "a DESC"},
		{"join", Join(Ident("b"), On{"a.id", "b.id"}, On{"a.x", "b.x"}).ToSQL(), "JOIN b ON a.id = b.id AND a.x = b.x"},
		{"join without conditions", Join(Ident("b")).ToSQL(), "JOIN b"},
		{"quoted join", NewBuilder(Quote(Backticks)).Join(As("b", "c"), On{"a.id", "c.id"}).ToSQL(), "JOIN `b` `c` ON `a`.`id` = `c`.`id`"},
		{"full join", Join(Ident("b"), On{"a.id", "b.id"}).As(FullJoin).ToSQL(), "FULL JOIN b ON a.id = b.id"},
	}

	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			if tst.result != tst.expected {
				t.Errorf("expected %q, got %q", tst.expected, tst.result)
			}
		})
	}
}
