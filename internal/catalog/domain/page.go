package domain

import "math"

// MaxPage is the largest page number served. It keeps Offset far from int
// overflow for any page size.
const MaxPage = math.MaxInt32

// Page is one pagination window over a filtered product set.
type Page struct {
	Products    []Product
	Total       int
	PerPage     int
	Offset      int
	From        int
	To          int
	CurrentPage int
	LastPage    int
}

// Offset returns the row offset of a 1-based page.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// LastPage returns ceil(total / perPage), 0 for an empty set.
func LastPage(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// NewPage assembles the window for products read at Offset(page, perPage).
// From and To are clamped to total so a page past the end still satisfies
// From <= To <= Total.
func NewPage(products []Product, total, page, perPage int) Page {
	if products == nil {
		products = []Product{}
	}
	offset := Offset(page, perPage)
	from := min(offset, total)
	to := min(from+len(products), total)

	return Page{
		Products:    products,
		Total:       total,
		PerPage:     perPage,
		Offset:      offset,
		From:        from,
		To:          to,
		CurrentPage: page,
		LastPage:    LastPage(total, perPage),
	}
}
