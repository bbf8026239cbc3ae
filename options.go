package sqlz

// Options configures statement building and execution. Use the Option
// functions to override the zero-cost defaults:
//
//	Quote:            nil (identity rendering)
//	RunInTransaction: true
//	Keys:             nil (result column names are used as-is)
type Options struct {
	// Quote is the identifier quoting strategy for generated SQL
	Quote Quoter
	// RunInTransaction wraps execution in a (possibly nested) transaction
	RunInTransaction bool
	// Keys renders the column names of rows returned by Query
	Keys Quoter
}

// Option modifies Options
type Option func(*Options)

// Quote sets the identifier quoting strategy
func Quote(q Quoter) Option {
	return func(o *Options) {
		o.Quote = q
	}
}

// Transaction sets whether execution runs inside a transaction
func Transaction(enabled bool) Option {
	return func(o *Options) {
		o.RunInTransaction = enabled
	}
}

// Keys sets the strategy used for column names of queried rows, e.g.
// Keys(Lower) to lower-case them
func Keys(q Quoter) Option {
	return func(o *Options) {
		o.Keys = q
	}
}

func newOptions(opts []Option) Options {
	o := Options{RunInTransaction: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Builder builds statements with a fixed quoting strategy. Clauses built
// by a Builder carry its strategy with them; clauses built by the
// package-level functions take on the strategy of the statement they
// are used in. The zero Builder renders identifiers as-is.
type Builder struct {
	Quote Quoter
}

// NewBuilder creates a Builder from the provided options. Only the Quote
// option is relevant to building.
func NewBuilder(opts ...Option) Builder {
	return Builder{Quote: newOptions(opts).Quote}
}

// Where creates a predicate quoted with the builder's strategy
func (b Builder) Where(conditions Map) Predicate {
	return Predicate{Conditions: conditions, quote: b.Quote}
}

// Join creates a JOIN clause quoted with the builder's strategy
func (b Builder) Join(table Identifier, on ...On) JoinClause {
	return JoinClause{Table: table, On: append([]On{}, on...), quote: b.Quote}
}

// OrderBy creates an ORDER BY clause quoted with the builder's strategy
func (b Builder) OrderBy(cols ...OrderColumn) OrderClause {
	return OrderClause{Columns: append([]OrderColumn{}, cols...), quote: b.Quote}
}
