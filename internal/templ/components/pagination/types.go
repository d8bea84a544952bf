// Package pagination renders page navigation for paginated lists.
package pagination

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/pagenav/internal/paginator"
)

// Data contains pagination information for display.
type Data struct {
	Pages      []paginator.Page
	TotalPages int
	TotalItems int

	// Empty when the link does not apply to the current page.
	FirstURL string
	PrevURL  string
	NextURL  string
	LastURL  string

	// 1-based item range of the current page; HasRange is false past the end.
	FirstItem int
	LastItem  int
	HasRange  bool
}

// FromSummary converts a paginator summary into display data.
func FromSummary[T any](s paginator.Summary[T]) Data {
	d := Data{
		Pages:      s.Pages,
		TotalPages: s.TotalPages,
		TotalItems: s.TotalItems,
		FirstURL:   deref(s.FirstURL),
		PrevURL:    deref(s.PrevURL),
		NextURL:    deref(s.NextURL),
		LastURL:    deref(s.LastURL),
	}
	if s.FirstItem != nil && s.LastItem != nil {
		d.FirstItem, d.LastItem, d.HasRange = *s.FirstItem, *s.LastItem, true
	}
	return d
}

// Visible reports whether the nav has anything to show.
func (d Data) Visible() bool {
	return len(d.Pages) > 0
}

// Config allows customization of pagination markup. Class fields are merged
// over the defaults, so a caller can override a single utility.
type Config struct {
	Label       string // aria-label of the nav element
	ListClass   string
	ItemClass   string
	LinkClass   string
	ActiveClass string
}

// Bootstrap 5 pagination classes.
const (
	baseListClass   = "pagination"
	baseItemClass   = "page-item"
	baseLinkClass   = "page-link"
	baseActiveClass = "active"
)

// DefaultConfig matches the demo page markup.
func DefaultConfig() Config {
	return Config{Label: "Page navigation"}
}

func (c Config) listClass() string {
	return merge(baseListClass, c.ListClass)
}

func (c Config) itemClass(active bool) string {
	if active {
		return merge(baseItemClass, c.ItemClass, baseActiveClass, c.ActiveClass)
	}
	return merge(baseItemClass, c.ItemClass)
}

func (c Config) linkClass() string {
	return merge(baseLinkClass, c.LinkClass)
}

// merge resolves conflicting utilities, later classes winning.
func merge(classes ...string) string {
	set := classes[:0:0]
	for _, c := range classes {
		if c != "" {
			set = append(set, c)
		}
	}
	return twmerge.Merge(set...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
