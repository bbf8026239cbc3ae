// Package sqlz implements an SQL statement builder and a nested
// transaction aware execution layer based on github.com/jmoiron/sqlx.
package sqlz

import (
	"sort"
	"strings"
)

// SQLStmt is an interface representing a general SQL statement. All
// specific statement types (e.g. Stmt, WithStmt) implement this
// interface
type SQLStmt interface {
	ToSQL(bool) (string, []interface{})
}

// Stmt is a parameterized statement: SQL text with question mark
// placeholders, and the values to bind to them, in order.
type Stmt struct {
	SQL  string
	Args []interface{}
}

// ToSQL implements the SQLStmt interface. Statements are always
// generated with question mark placeholders, rebinding to the driver's
// bind type is done when executing, so the argument is ignored.
func (stmt Stmt) ToSQL(_ bool) (string, []interface{}) {
	return stmt.SQL, stmt.Args
}

// Pair is a single entry of a Map
type Pair struct {
	Key   string
	Value interface{}
}

// KV creates a Pair
func KV(key string, value interface{}) Pair {
	return Pair{key, value}
}

// Map is an ordered mapping of identifiers to values. It is used for
// predicates, assignments and inserted rows. Unlike Go's built-in maps,
// iteration order is the order in which entries were added, and that
// order is reflected in generated SQL.
type Map []Pair

// FromMap converts a Go map into a Map. Since Go maps are unordered,
// keys are sorted so that generated SQL is deterministic.
func FromMap(in map[string]interface{}) Map {
	out := make(Map, 0, len(in))
	for _, key := range sortKeys(in) {
		out = append(out, Pair{key, in[key]})
	}
	return out
}

func sortKeys(in map[string]interface{}) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a value to a key. An existing key keeps its position,
// a new key is appended.
func (m Map) Set(key string, value interface{}) Map {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Pair{key, value})
}

// Get returns the value of a key, and whether the key exists
func (m Map) Get(key string) (value interface{}, ok bool) {
	for _, pair := range m {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return nil, false
}

// Keys returns the map's keys in order
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, pair := range m {
		keys[i] = pair.Key
	}
	return keys
}

// Values returns the map's values in order
func (m Map) Values() []interface{} {
	values := make([]interface{}, len(m))
	for i, pair := range m {
		values[i] = pair.Value
	}
	return values
}

// Clause is a fragment that can be passed to Select after the table:
// JoinClause, Predicate or OrderClause.
type Clause interface {
	clause()
}

// Predicate is a WHERE clause built from a Map. Every entry becomes an
// equality condition ("id = ?"), or "id IS NULL" if its value is nil.
// Entries are joined with AND in the map's order.
type Predicate struct {
	Conditions Map
	quote      Quoter
}

func (Predicate) clause() {}

// Where creates a predicate from the provided map of conditions. The
// predicate has no quoting strategy of its own: it uses the strategy of
// the statement it is passed to, or Identity when used on its own.
func Where(conditions Map) Predicate {
	return Predicate{Conditions: conditions}
}

// ToSQL generates the predicate's SQL (without the WHERE keyword) and
// returns its bindings. An empty predicate generates an empty string.
func (p Predicate) ToSQL() (asSQL string, bindings []interface{}) {
	return p.parse(nil)
}

func (p Predicate) parse(outer Quoter) (asSQL string, bindings []interface{}) {
	q := p.quote
	if q == nil {
		q = outer
	}

	conds := make([]string, 0, len(p.Conditions))
	for _, pair := range p.Conditions {
		col := QuoteIdent(q, pair.Key)
		if pair.Value == nil {
			conds = append(conds, col+" IS NULL")
			continue
		}
		conds = append(conds, col+" = ?")
		bindings = append(bindings, pair.Value)
	}

	return strings.Join(conds, " AND "), bindings
}

func parseConditions(preds []Predicate, outer Quoter) (asSQL string, bindings []interface{}) {
	var sqls []string
	for _, pred := range preds {
		predSQL, predBindings := pred.parse(outer)
		if predSQL == "" {
			continue
		}
		sqls = append(sqls, predSQL)
		bindings = append(bindings, predBindings...)
	}

	return strings.Join(sqls, " AND "), bindings
}
