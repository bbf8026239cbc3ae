package sqlz

import "strings"

// Identifier is a column or table reference, optionally aliased. The
// name may be qualified with dots ("table.column").
type Identifier struct {
	Name  string
	Alias string
}

// Ident creates an un-aliased identifier
func Ident(name string) Identifier {
	return Identifier{Name: name}
}

// As creates an aliased identifier. Columns render as "name AS alias",
// tables as "name alias".
func As(name, alias string) Identifier {
	return Identifier{Name: name, Alias: alias}
}

// Cols creates a list of un-aliased identifiers from the provided names
func Cols(names ...string) []Identifier {
	ids := make([]Identifier, len(names))
	for i, name := range names {
		ids[i] = Identifier{Name: name}
	}
	return ids
}

// Star selects all columns
var Star = []Identifier{{Name: "*"}}

func (id Identifier) column(q Quoter) string {
	str := QuoteIdent(q, id.Name)
	if id.Alias != "" {
		str += " AS " + QuoteIdent(q, id.Alias)
	}
	return str
}

func (id Identifier) table(q Quoter) string {
	str := QuoteIdent(q, id.Name)
	if id.Alias != "" {
		str += " " + QuoteIdent(q, id.Alias)
	}
	return str
}

func columnList(ids []Identifier, q Quoter, sep string) string {
	cols := make([]string, len(ids))
	for i, id := range ids {
		cols[i] = id.column(q)
	}
	return strings.Join(cols, sep)
}

func quoteAll(names []string, q Quoter) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = QuoteIdent(q, name)
	}
	return quoted
}
