package sqlz

import (
	"strings"
)

// CommonTable is a named statement of a WITH query, referenced by its
// name from the statements that follow it
type CommonTable struct {
	Name string
	Stmt SQLStmt
}

// WithStmt is a WITH query: a list of common table expressions and the
// main statement using them
type WithStmt struct {
	Tables    []CommonTable
	Main      SQLStmt
	recursive bool

	quote Quoter
}

// With starts a WITH query whose first common table is the provided
// statement, named as
func With(stmt SQLStmt, as string) *WithStmt {
	return Builder{}.With(stmt, as)
}

// With starts a WITH query, quoting common table names with the
// builder's strategy. The statements themselves are rendered as given.
func (b Builder) With(stmt SQLStmt, as string) *WithStmt {
	return &WithStmt{
		Tables: []CommonTable{{Name: as, Stmt: stmt}},
		quote:  b.Quote,
	}
}

// And appends another common table
func (w *WithStmt) And(stmt SQLStmt, as string) *WithStmt {
	w.Tables = append(w.Tables, CommonTable{Name: as, Stmt: stmt})
	return w
}

// Recursive marks the query as WITH RECURSIVE
func (w *WithStmt) Recursive() *WithStmt {
	w.recursive = true
	return w
}

// Then sets the main statement
func (w *WithStmt) Then(main SQLStmt) *WithStmt {
	w.Main = main
	return w
}

// ToSQL generates the query's SQL. Parameters follow the textual order
// of their placeholders: the common tables' first, then the main
// statement's.
func (w *WithStmt) ToSQL(_ bool) (asSQL string, bindings []interface{}) {
	keyword := "WITH"
	if w.recursive {
		keyword = "WITH RECURSIVE"
	}

	tables := make([]string, len(w.Tables))
	for i, ct := range w.Tables {
		ctSQL, ctBindings := ct.Stmt.ToSQL(false)
		tables[i] = QuoteIdent(w.quote, ct.Name) + " AS (" + ctSQL + ")"
		bindings = append(bindings, ctBindings...)
	}

	parts := []string{keyword, strings.Join(tables, ", ")}
	if w.Main != nil {
		mainSQL, mainBindings := w.Main.ToSQL(false)
		parts = append(parts, mainSQL)
		bindings = append(bindings, mainBindings...)
	}

	return strings.Join(parts, " "), bindings
}
