package domain

import "testing"

func TestLastPage(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 30, 0},
		{1, 30, 1},
		{30, 30, 1},
		{31, 30, 2},
		{95, 16, 6},
	}
	for _, tt := range tests {
		if got := LastPage(tt.total, tt.perPage); got != tt.want {
			t.Errorf("LastPage(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestNewPageBounds(t *testing.T) {
	const perPage = 30
	for total := 0; total <= 95; total++ {
		last := LastPage(total, perPage)
		for page := 1; page <= last+2; page++ {
			offset := Offset(page, perPage)
			n := min(max(total-offset, 0), perPage)
			p := NewPage(make([]Product, n), total, page, perPage)

			if !(p.From <= p.To && p.To <= p.Total) {
				t.Fatalf("total=%d page=%d: from=%d to=%d violates from <= to <= total", total, page, p.From, p.To)
			}
			if p.LastPage != last {
				t.Fatalf("total=%d: last page %d, want %d", total, p.LastPage, last)
			}
			if page <= last && p.From != offset {
				t.Fatalf("total=%d page=%d: from=%d, want offset %d", total, page, p.From, offset)
			}
		}
	}
}

func TestNewPageNeverNilProducts(t *testing.T) {
	p := NewPage(nil, 0, 1, 30)
	if p.Products == nil || len(p.Products) != 0 {
		t.Fatalf("expected empty non-nil products")
	}
	if p.From != 0 || p.To != 0 || p.LastPage != 0 {
		t.Fatalf("unexpected empty page %+v", p)
	}
}

func TestFilterEmpty(t *testing.T) {
	if (Filter{Kind: FilterNone}).Empty() {
		t.Fatalf("unfiltered view must not be empty")
	}
	if !(Filter{Kind: FilterCategory}).Empty() {
		t.Fatalf("blank category must be empty")
	}
	if (Filter{Kind: FilterName, Term: "Shoe"}).Empty() {
		t.Fatalf("name filter with term must not be empty")
	}
}
