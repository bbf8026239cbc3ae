package sqlz

import (
	"strings"
)

// Update creates an UPDATE statement for the provided table, setting the
// columns of the map to their values. A nil value sets the column to
// NULL without a binding. Bindings are the map's non-nil values followed
// by the predicates' bindings. An empty map is an argument error.
func Update(table Identifier, set Map, where ...Predicate) (Stmt, error) {
	return Builder{}.Update(table, set, where...)
}

// Update creates an UPDATE statement quoted with the builder's strategy
func (b Builder) Update(table Identifier, set Map, where ...Predicate) (Stmt, error) {
	if len(set) == 0 {
		return Stmt{}, ErrNoAssignments
	}

	var (
		updates  = make([]string, 0, len(set))
		bindings []interface{}
	)

	for _, pair := range set {
		col := QuoteIdent(b.Quote, pair.Key)
		if pair.Value == nil {
			updates = append(updates, col+" = NULL")
			continue
		}
		updates = append(updates, col+" = ?")
		bindings = append(bindings, pair.Value)
	}

	var clauses = []string{"UPDATE " + table.table(b.Quote), "SET " + strings.Join(updates, ",")}

	whereClause, whereBindings := parseConditions(where, b.Quote)
	if whereClause != "" {
		bindings = append(bindings, whereBindings...)
		clauses = append(clauses, "WHERE "+whereClause)
	}

	return Stmt{SQL: strings.Join(clauses, " "), Args: bindings}, nil
}
