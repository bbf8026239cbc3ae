package sqlz

import (
	"fmt"
	"strings"
)

// InsertData describes the data of an INSERT statement, in one of two
// mutually exclusive forms: Rows, where every row is a Map of columns
// to values and generates its own statement; or Columns and Values,
// which generate a single multi-row statement.
type InsertData struct {
	Rows    []Map
	Columns []string
	Values  [][]interface{}
}

// Rows creates InsertData in row form
func Rows(rows ...Map) InsertData {
	return InsertData{Rows: rows}
}

// Values creates InsertData in column/values form
func Values(cols []string, rows ...[]interface{}) InsertData {
	return InsertData{Columns: cols, Values: rows}
}

func (data InsertData) validate() error {
	hasRows := len(data.Rows) > 0
	hasCols := len(data.Columns) > 0 || len(data.Values) > 0

	switch {
	case hasRows && hasCols:
		return ErrMixedInsert
	case !hasRows && !hasCols:
		return ErrNoInsertData
	case hasRows:
		return nil
	case len(data.Columns) == 0:
		return ErrNoInsertData
	case len(data.Values) == 0:
		return ErrNoValueRows
	}

	for i, row := range data.Values {
		if len(row) != len(data.Columns) {
			return fmt.Errorf("%w: row %d has %d values, expected %d", ErrColumnCount, i+1, len(row), len(data.Columns))
		}
	}

	return nil
}

// Insert creates INSERT statements for the provided table. In row form,
// one statement is generated per row, with the row's own keys as its
// columns. In column/values form a single statement inserting all value
// rows is generated. An argument error is returned if the data is empty,
// mixes both forms, or has value rows not matching the columns.
func Insert(table Identifier, data InsertData) ([]Stmt, error) {
	return Builder{}.Insert(table, data)
}

// Insert creates INSERT statements quoted with the builder's strategy
func (b Builder) Insert(table Identifier, data InsertData) ([]Stmt, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}

	if len(data.Rows) > 0 {
		stmts := make([]Stmt, 0, len(data.Rows))
		for i, row := range data.Rows {
			if len(row) == 0 {
				return nil, fmt.Errorf("%w: row %d is empty", ErrNoInsertData, i+1)
			}
			stmts = append(stmts, b.insertSQL(table, row.Keys(), [][]interface{}{row.Values()}))
		}
		return stmts, nil
	}

	return []Stmt{b.insertSQL(table, data.Columns, data.Values)}, nil
}

func (b Builder) insertSQL(table Identifier, cols []string, rows [][]interface{}) Stmt {
	var (
		groups   = make([]string, len(rows))
		bindings = make([]interface{}, 0, len(rows)*len(cols))
	)

	for i, row := range rows {
		placeholders := make([]string, len(row))
		for j := range row {
			placeholders[j] = "?"
		}
		groups[i] = "( " + strings.Join(placeholders, ", ") + " )"
		bindings = append(bindings, row...)
	}

	asSQL := "INSERT INTO " + table.table(b.Quote) +
		" ( " + strings.Join(quoteAll(cols, b.Quote), ", ") + " )" +
		" VALUES " + strings.Join(groups, ", ")

	return Stmt{SQL: asSQL, Args: bindings}
}
