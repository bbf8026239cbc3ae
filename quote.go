package sqlz

import "strings"

// Quoter is an identifier quoting strategy. It receives a single raw
// identifier segment (e.g. a table or column name with no dots) and
// returns the form in which it should appear in generated SQL.
type Quoter func(string) string

// Identity is the default quoting strategy, leaving identifiers untouched
func Identity(s string) string {
	return s
}

// Lower lower-cases identifiers
func Lower(s string) string {
	return strings.ToLower(s)
}

// Wrap creates a Quoter that wraps identifiers with the provided
// strings, e.g. Wrap("`", "`") or Wrap("[", "]")
func Wrap(left, right string) Quoter {
	return func(s string) string {
		return left + s + right
	}
}

// Backticks, DoubleQuotes and Brackets are common character-wrapping
// quoters (MySQL, ANSI SQL and SQL Server respectively)
var (
	Backticks    = Wrap("`", "`")
	DoubleQuotes = Wrap(`"`, `"`)
	Brackets     = Wrap("[", "]")
)

// QuoteIdent renders an identifier using the provided quoting strategy.
// The strategy is applied to every dot-separated segment independently,
// so with Backticks "t.id" becomes "`t`.`id`". The "*" segment is never
// quoted, and a nil Quoter is equivalent to Identity.
func QuoteIdent(q Quoter, id string) string {
	if q == nil {
		return id
	}

	segments := strings.Split(id, ".")
	for i, seg := range segments {
		if seg == "*" {
			continue
		}
		segments[i] = q(seg)
	}

	return strings.Join(segments, ".")
}

// QuoterFor returns the customary Quoter for a database/sql driver name.
// Drivers it doesn't know get Identity.
func QuoterFor(driverName string) Quoter {
	switch driverName {
	case "mysql":
		return Backticks
	case "postgres", "pgx", "pq", "sqlite", "sqlite3", "godror", "oci8", "ora":
		return DoubleQuotes
	case "sqlserver", "mssql":
		return Brackets
	default:
		return Identity
	}
}
