package sqlz

import (
	"testing"
)

func TestWith(t *testing.T) {
	rows, _ := Insert(Ident("table2"), Values([]string{"something_id", "other_value"}, []interface{}{7, 4}))

	runTests(t, []test{
		{
			"WITH with one auxiliary query",
			With(
				Select(Cols("id"), Ident("table"), Where(Map{KV("something", 3)})),
				"aux",
			).Then(rows[0]),
			"WITH aux AS (SELECT id FROM table WHERE something = ?) INSERT INTO table2 ( something_id, other_value ) VALUES ( ?, ? )",
			[]interface{}{3, 7, 4},
		},

		{
			"WITH with multiple auxiliary queries",
			With(
				Select(Cols("id"), Ident("table"), Where(Map{KV("something", 3)})),
				"somethings",
			).And(
				Select([]Identifier{As("MAX(value)", "max")}, Ident("other_table"), Where(Map{KV("something", 4)})),
				"vals",
			).Then(
				Delete(Ident("ref_table"), Where(Map{KV("something_id", 5)})),
			),
			"WITH somethings AS (SELECT id FROM table WHERE something = ?), vals AS (SELECT MAX(value) AS max FROM other_table WHERE something = ?) DELETE FROM ref_table WHERE something_id = ?",
			[]interface{}{3, 4, 5},
		},

		{
			"quoted WITH",
			NewBuilder(Quote(DoubleQuotes)).With(
				Select(Cols("id"), Ident("t")),
				"aux",
			).Then(Select(Star, Ident("aux"))),
			`WITH "aux" AS (SELECT id FROM t) SELECT * FROM aux`,
			[]interface{}{},
		},

		{
			"recursive WITH",
			With(
				Stmt{SQL: "SELECT id, parent_id FROM nodes WHERE id = ? UNION ALL SELECT n.id, n.parent_id FROM nodes n JOIN tree ON n.parent_id = tree.id", Args: []interface{}{1}},
				"tree",
			).Recursive().Then(Select(Cols("id"), Ident("tree"), Where(Map{KV("parent_id", nil)}))),
			"WITH RECURSIVE tree AS (SELECT id, parent_id FROM nodes WHERE id = ? UNION ALL SELECT n.id, n.parent_id FROM nodes n JOIN tree ON n.parent_id = tree.id) SELECT id FROM tree WHERE parent_id IS NULL",
			[]interface{}{1},
		},
	})
}
