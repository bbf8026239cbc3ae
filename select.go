package sqlz

import (
	"strings"
)

// JoinType is an enumerated type representing the
// type of a JOIN clause (plain, INNER, LEFT, RIGHT or FULL)
type JoinType int

// String returns the string representation of the
// join type (e.g. "FULL JOIN")
func (j JoinType) String() string {
	return []string{"", "INNER ", "LEFT ", "RIGHT ", "FULL "}[int(j)] + "JOIN"
}

// PlainJoin represents a join without a type keyword
// InnerJoin represents an inner join
// LeftJoin represents a left join
// RightJoin represents a right join
// FullJoin represents a full join
const (
	PlainJoin JoinType = iota
	InnerJoin
	LeftJoin
	RightJoin
	FullJoin
)

// On is a join condition comparing two columns for equality
type On struct {
	Left  string
	Right string
}

// JoinClause represents a JOIN clause in a
// SELECT statement
type JoinClause struct {
	Type  JoinType
	Table Identifier
	On    []On
	quote Quoter
}

func (JoinClause) clause() {}

// Join creates a JOIN clause on the provided table. Conditions are
// joined with AND, in the order provided.
func Join(table Identifier, on ...On) JoinClause {
	return Builder{}.Join(table, on...)
}

// As returns a copy of the join with a different join type
func (j JoinClause) As(joinType JoinType) JoinClause {
	j.Type = joinType
	return j
}

// ToSQL generates SQL for the JOIN clause
func (j JoinClause) ToSQL() string {
	return j.parse(nil)
}

func (j JoinClause) parse(outer Quoter) string {
	q := j.quote
	if q == nil {
		q = outer
	}

	asSQL := j.Type.String() + " " + j.Table.table(q)
	if len(j.On) == 0 {
		return asSQL
	}

	conds := make([]string, len(j.On))
	for i, on := range j.On {
		conds[i] = QuoteIdent(q, on.Left) + " = " + QuoteIdent(q, on.Right)
	}

	return asSQL + " ON " + strings.Join(conds, " AND ")
}

// OrderColumn represents a column in an ORDER BY
// clause (with direction)
type OrderColumn struct {
	Column string
	Desc   bool
}

// ToSQL generates SQL for an OrderColumn
func (o OrderColumn) ToSQL() string {
	return o.parse(nil)
}

func (o OrderColumn) parse(q Quoter) string {
	str := QuoteIdent(q, o.Column)
	if o.Desc {
		str += " DESC"
	} else {
		str += " ASC"
	}
	return str
}

// Asc creates an OrderColumn for the provided
// column in ascending order
func Asc(col string) OrderColumn {
	return OrderColumn{col, false}
}

// Desc creates an OrderColumn for the provided
// column in descending order
func Desc(col string) OrderColumn {
	return OrderColumn{col, true}
}

// OrderClause is an ORDER BY clause
type OrderClause struct {
	Columns []OrderColumn
	quote   Quoter
}

func (OrderClause) clause() {}

// OrderBy creates an ORDER BY clause. Pass OrderColumn objects
// using the Asc and Desc functions.
func OrderBy(cols ...OrderColumn) OrderClause {
	return Builder{}.OrderBy(cols...)
}

// ToSQL generates SQL for the ORDER BY clause. An empty clause
// generates an empty string.
func (o OrderClause) ToSQL() string {
	return o.parse(nil)
}

func (o OrderClause) parse(outer Quoter) string {
	if len(o.Columns) == 0 {
		return ""
	}

	q := o.quote
	if q == nil {
		q = outer
	}

	return "ORDER BY " + strings.Join(o.columns(q), ",")
}

func (o OrderClause) columns(q Quoter) []string {
	cols := make([]string, len(o.Columns))
	for i, col := range o.Columns {
		cols[i] = col.parse(q)
	}
	return cols
}

// Select creates a SELECT statement. The clauses may be any number of
// JOIN clauses, predicates and ORDER BY clauses. Joins are generated in
// the order provided, multiple predicates are joined with AND, and
// multiple ORDER BY clauses are merged. Pass Star (or no columns) to
// select all columns.
func Select(cols []Identifier, table Identifier, clauses ...Clause) Stmt {
	return Builder{}.Select(cols, table, clauses...)
}

// Select creates a SELECT statement quoted with the builder's strategy
func (b Builder) Select(cols []Identifier, table Identifier, clauses ...Clause) Stmt {
	var (
		joins    []string
		preds    []Predicate
		ordering []string
	)

	for _, c := range clauses {
		switch c := c.(type) {
		case JoinClause:
			joins = append(joins, c.parse(b.Quote))
		case Predicate:
			preds = append(preds, c)
		case OrderClause:
			q := c.quote
			if q == nil {
				q = b.Quote
			}
			ordering = append(ordering, c.columns(q)...)
		}
	}

	var clauseSQLs = []string{"SELECT"}

	if len(cols) == 0 {
		clauseSQLs = append(clauseSQLs, "*")
	} else {
		clauseSQLs = append(clauseSQLs, columnList(cols, b.Quote, ","))
	}

	clauseSQLs = append(clauseSQLs, "FROM "+table.table(b.Quote))
	clauseSQLs = append(clauseSQLs, joins...)

	whereClause, bindings := parseConditions(preds, b.Quote)
	if whereClause != "" {
		clauseSQLs = append(clauseSQLs, "WHERE "+whereClause)
	}

	if len(ordering) > 0 {
		clauseSQLs = append(clauseSQLs, "ORDER BY "+strings.Join(ordering, ","))
	}

	return Stmt{SQL: strings.Join(clauseSQLs, " "), Args: bindings}
}
