package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID       int64
	Name     string
	Category string
	Image    string
	Price    decimal.Decimal
}

// FilterKind selects how Filter.Term is matched against the catalog.
type FilterKind int

const (
	// FilterNone matches every product.
	FilterNone FilterKind = iota
	// FilterCategory matches product_category exactly.
	FilterCategory
	// FilterName matches products whose name contains the term.
	FilterName
)

type Filter struct {
	Kind FilterKind
	Term string
}

// Empty reports whether the filter can match nothing because its term is
// blank. An unfiltered view is never empty.
func (f Filter) Empty() bool {
	return f.Kind != FilterNone && f.Term == ""
}
