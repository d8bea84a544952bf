// Package paginator computes pagination metadata for a fixed item collection:
// total pages, adjacent pages and their URLs, the sliding page window with
// ellipses, and the slice of items visible on the current page.
//
// A Paginator is not safe for concurrent mutation. Build one per request.
package paginator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DukeRupert/pagenav/internal/domain"
)

const (
	// NumPlaceholder is replaced by the page number in URL patterns.
	NumPlaceholder = "(:num)"

	// DefaultMaxPagesToShow is the window width used until SetMaxPagesToShow is called.
	DefaultMaxPagesToShow = 10

	// MinMaxPagesToShow leaves room for the pinned first and last pages plus one sliding page.
	MinMaxPagesToShow = 3
)

// ErrInvalidConfiguration is wrapped by every error returned from a setter.
var ErrInvalidConfiguration = errors.New("invalid paginator configuration")

// Paginator holds the pagination state for one item collection.
type Paginator[T any] struct {
	items                []T
	totalItem            int
	itemsPerPage         int
	currentPage          int
	totalPage            int
	urlPattern           string
	maxPagesToShow       int
	alwaysShowPagination bool
}

// New creates a Paginator over items. The total item count starts as len(items).
// urlPattern should contain NumPlaceholder, e.g. "/foo/page/(:num)".
func New[T any](items []T, itemsPerPage, currentPage int, urlPattern string) (*Paginator[T], error) {
	if err := checkItemsPerPage("paginator.New", itemsPerPage); err != nil {
		return nil, err
	}
	if err := checkCurrentPage("paginator.New", currentPage); err != nil {
		return nil, err
	}

	p := &Paginator[T]{
		items:          items,
		totalItem:      len(items),
		itemsPerPage:   itemsPerPage,
		currentPage:    currentPage,
		urlPattern:     urlPattern,
		maxPagesToShow: DefaultMaxPagesToShow,
	}
	p.updateTotalPage()
	return p, nil
}

func (p *Paginator[T]) updateTotalPage() {
	p.totalPage = totalPages(p.totalItem, p.itemsPerPage)
}

// totalPages is ceil(totalItem / itemsPerPage), or 0 when itemsPerPage is not positive.
func totalPages(totalItem, itemsPerPage int) int {
	if itemsPerPage <= 0 {
		return 0
	}
	n := totalItem / itemsPerPage
	if totalItem%itemsPerPage != 0 {
		n++
	}
	return n
}

// pageInRange reports whether page holds at least one of count items.
// It avoids computing the page offset, which overflows for large pages.
func pageInRange(page, itemsPerPage, count int) bool {
	return count > 0 && page-1 <= (count-1)/itemsPerPage
}

// pageEnd returns min(start+itemsPerPage, limit) without overflowing.
func pageEnd(start, itemsPerPage, limit int) int {
	if itemsPerPage >= limit-start {
		return limit
	}
	return start + itemsPerPage
}

func invalid(op, format string, args ...any) error {
	return domain.Wrap(ErrInvalidConfiguration, domain.EINVALID, op, fmt.Sprintf(format, args...))
}

func checkItemsPerPage(op string, n int) error {
	if n < 1 {
		return invalid(op, "items per page must be >= 1, got %d", n)
	}
	return nil
}

func checkCurrentPage(op string, n int) error {
	if n < 1 {
		return invalid(op, "current page must be >= 1, got %d", n)
	}
	return nil
}

// =============================================================================
// Configuration
// =============================================================================

// SetItemsPerPage changes the page size and recomputes the total page count.
func (p *Paginator[T]) SetItemsPerPage(n int) error {
	if err := checkItemsPerPage("paginator.SetItemsPerPage", n); err != nil {
		return err
	}
	p.itemsPerPage = n
	p.updateTotalPage()
	return nil
}

// SetTotalItem overrides the total item count, which may differ from the
// length of the item collection when items are counted elsewhere.
func (p *Paginator[T]) SetTotalItem(n int) error {
	if n < 0 {
		return invalid("paginator.SetTotalItem", "total item count must be >= 0, got %d", n)
	}
	p.totalItem = n
	p.updateTotalPage()
	return nil
}

// SetCurrentPage changes the current page. Pages past the last page are allowed.
func (p *Paginator[T]) SetCurrentPage(n int) error {
	if err := checkCurrentPage("paginator.SetCurrentPage", n); err != nil {
		return err
	}
	p.currentPage = n
	return nil
}

// SetMaxPagesToShow sets the number of entries the page window aims for.
func (p *Paginator[T]) SetMaxPagesToShow(n int) error {
	if n < MinMaxPagesToShow {
		return invalid("paginator.SetMaxPagesToShow", "max pages to show must be >= %d, got %d", MinMaxPagesToShow, n)
	}
	p.maxPagesToShow = n
	return nil
}

// SetURLPattern replaces the URL pattern.
func (p *Paginator[T]) SetURLPattern(pattern string) {
	p.urlPattern = pattern
}

// SetAlwaysShowPagination makes a single page collection yield a one entry window.
func (p *Paginator[T]) SetAlwaysShowPagination(show bool) {
	p.alwaysShowPagination = show
}

// =============================================================================
// Getters
// =============================================================================

// Items returns the underlying collection. Callers must not modify it.
func (p *Paginator[T]) Items() []T { return p.items }

func (p *Paginator[T]) TotalItem() int { return p.totalItem }

func (p *Paginator[T]) ItemsPerPage() int { return p.itemsPerPage }

func (p *Paginator[T]) CurrentPage() int { return p.currentPage }

func (p *Paginator[T]) TotalPage() int { return p.totalPage }

func (p *Paginator[T]) URLPattern() string { return p.urlPattern }

func (p *Paginator[T]) MaxPagesToShow() int { return p.maxPagesToShow }

func (p *Paginator[T]) AlwaysShowPagination() bool { return p.alwaysShowPagination }

// =============================================================================
// Adjacent pages and URLs
// =============================================================================

// PageURL substitutes n for every NumPlaceholder in the URL pattern.
func (p *Paginator[T]) PageURL(n int) string {
	return strings.ReplaceAll(p.urlPattern, NumPlaceholder, strconv.Itoa(n))
}

// NextPage returns the page after the current one, if the current page is before the last.
func (p *Paginator[T]) NextPage() (int, bool) {
	if p.currentPage < p.totalPage {
		return p.currentPage + 1, true
	}
	return 0, false
}

// PrevPage returns the page before the current one, if the current page is after the first.
func (p *Paginator[T]) PrevPage() (int, bool) {
	if p.currentPage > 1 {
		return p.currentPage - 1, true
	}
	return 0, false
}

func (p *Paginator[T]) NextURL() (string, bool) {
	next, ok := p.NextPage()
	if !ok {
		return "", false
	}
	return p.PageURL(next), true
}

func (p *Paginator[T]) PrevURL() (string, bool) {
	prev, ok := p.PrevPage()
	if !ok {
		return "", false
	}
	return p.PageURL(prev), true
}

// FirstPageURL is only reported when a previous page exists.
func (p *Paginator[T]) FirstPageURL() (string, bool) {
	if _, ok := p.PrevPage(); !ok {
		return "", false
	}
	return p.PageURL(1), true
}

// LastPageURL is only reported when a next page exists.
func (p *Paginator[T]) LastPageURL() (string, bool) {
	if _, ok := p.NextPage(); !ok {
		return "", false
	}
	return p.PageURL(p.totalPage), true
}
