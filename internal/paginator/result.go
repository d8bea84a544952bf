package paginator

import "slices"

// Result returns the items on the current page. A page past the end of the
// collection, or a zero total item count, yields an empty slice.
func (p *Paginator[T]) Result() []T {
	if p.totalItem == 0 || !pageInRange(p.currentPage, p.itemsPerPage, len(p.items)) {
		return []T{}
	}

	start := (p.currentPage - 1) * p.itemsPerPage
	end := pageEnd(start, p.itemsPerPage, len(p.items))

	return slices.Clone(p.items[start:end])
}

// CurrentPageFirstItem returns the 1-based index of the first item on the
// current page, or false when the page starts past the total item count.
func (p *Paginator[T]) CurrentPageFirstItem() (int, bool) {
	if !pageInRange(p.currentPage, p.itemsPerPage, p.totalItem) {
		return 0, false
	}
	return (p.currentPage-1)*p.itemsPerPage + 1, true
}

// CurrentPageLastItem returns the 1-based index of the last item on the
// current page, clamped to the total item count.
func (p *Paginator[T]) CurrentPageLastItem() (int, bool) {
	first, ok := p.CurrentPageFirstItem()
	if !ok {
		return 0, false
	}
	return pageEnd(first-1, p.itemsPerPage, p.totalItem), true
}

// Summary bundles the current page's items with every value a renderer needs.
// Absent values are nil and encode as null.
type Summary[T any] struct {
	Items        []T     `json:"items"          yaml:"items"`
	TotalItems   int     `json:"total_items"    yaml:"total_items"`
	TotalPages   int     `json:"total_pages"    yaml:"total_pages"`
	CurrentPage  int     `json:"current_page"   yaml:"current_page"`
	ItemsPerPage int     `json:"items_per_page" yaml:"items_per_page"`
	Pages        []Page  `json:"pages"          yaml:"pages"`
	PrevPage     *int    `json:"prev_page"      yaml:"prev_page"`
	NextPage     *int    `json:"next_page"      yaml:"next_page"`
	PrevURL      *string `json:"prev_url"       yaml:"prev_url"`
	NextURL      *string `json:"next_url"       yaml:"next_url"`
	FirstURL     *string `json:"first_url"      yaml:"first_url"`
	LastURL      *string `json:"last_url"       yaml:"last_url"`
	FirstItem    *int    `json:"first_item"     yaml:"first_item"`
	LastItem     *int    `json:"last_item"      yaml:"last_item"`
}

// Summary computes the full result for the current state.
func (p *Paginator[T]) Summary() Summary[T] {
	return Summary[T]{
		Items:        p.Result(),
		TotalItems:   p.totalItem,
		TotalPages:   p.totalPage,
		CurrentPage:  p.currentPage,
		ItemsPerPage: p.itemsPerPage,
		Pages:        p.Pages(),
		PrevPage:     optional(p.PrevPage()),
		NextPage:     optional(p.NextPage()),
		PrevURL:      optional(p.PrevURL()),
		NextURL:      optional(p.NextURL()),
		FirstURL:     optional(p.FirstPageURL()),
		LastURL:      optional(p.LastPageURL()),
		FirstItem:    optional(p.CurrentPageFirstItem()),
		LastItem:     optional(p.CurrentPageLastItem()),
	}
}

func optional[V any](v V, ok bool) *V {
	if !ok {
		return nil
	}
	return &v
}
