package sqlz

import (
	"strings"
)

// Delete creates a DELETE statement for the provided table. Without a
// (non-empty) predicate, all rows of the table are deleted.
func Delete(table Identifier, where ...Predicate) Stmt {
	return Builder{}.Delete(table, where...)
}

// Delete creates a DELETE statement quoted with the builder's strategy
func (b Builder) Delete(table Identifier, where ...Predicate) Stmt {
	var clauses = []string{"DELETE FROM " + table.table(b.Quote)}

	whereClause, bindings := parseConditions(where, b.Quote)
	if whereClause != "" {
		clauses = append(clauses, "WHERE "+whereClause)
	}

	return Stmt{SQL: strings.Join(clauses, " "), Args: bindings}
}
