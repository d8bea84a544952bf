package paginator

import "strconv"

// Ellipsis labels the gap entries of a page window.
const Ellipsis = "..."

// Page is one entry of a page window: either a numbered page or an ellipsis.
// Ellipsis entries have no number and no URL.
type Page struct {
	Number     int    `json:"num,omitempty" yaml:"num,omitempty"`
	Label      string `json:"label"         yaml:"label"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	IsCurrent  bool   `json:"is_current"    yaml:"is_current"`
	IsEllipsis bool   `json:"is_ellipsis"   yaml:"is_ellipsis"`
}

func (p *Paginator[T]) numbered(n int) Page {
	return Page{
		Number:    n,
		Label:     strconv.Itoa(n),
		URL:       p.PageURL(n),
		IsCurrent: n == p.currentPage,
	}
}

func ellipsis() Page {
	return Page{Label: Ellipsis, IsEllipsis: true}
}

// Pages returns the page window for the current state.
//
// With at most MaxPagesToShow pages every page is listed. Otherwise the first
// and last pages are pinned around a sliding run of pages near the current
// one, with an ellipsis wherever the run does not reach a pinned page:
//
//	1 ... 5 6 7 [8] 9 10 11 12 ... 20
func (p *Paginator[T]) Pages() []Page {
	if p.totalPage <= 1 && !p.alwaysShowPagination {
		return []Page{}
	}

	if p.totalPage <= p.maxPagesToShow {
		pages := make([]Page, p.totalPage)
		for i := range pages {
			pages[i] = p.numbered(i + 1)
		}
		return pages
	}

	start, end := slidingRange(p.totalPage, p.currentPage, p.maxPagesToShow)

	pages := make([]Page, 0, end-start+5)
	pages = append(pages, p.numbered(1))
	if start > 2 {
		pages = append(pages, ellipsis())
	}
	for n := start; n <= end; n++ {
		pages = append(pages, p.numbered(n))
	}
	if end < p.totalPage-1 {
		pages = append(pages, ellipsis())
	}
	pages = append(pages, p.numbered(p.totalPage))
	return pages
}

// slidingRange returns the inclusive range of pages shown between the pinned
// first and last pages. It requires totalPage > maxPagesToShow >= 3.
func slidingRange(totalPage, currentPage, maxPagesToShow int) (start, end int) {
	adjacents := (maxPagesToShow - 3) / 2
	middle := maxPagesToShow - 2

	if currentPage > totalPage-adjacents {
		start = totalPage - maxPagesToShow + 2
	} else {
		start = currentPage - adjacents
	}
	start = max(start, 2)

	end = totalPage - 1
	if maxPagesToShow-3 < end-start {
		end = start + maxPagesToShow - 3
	}

	if width := end - start + 1; width < middle {
		start = max(start-(middle-width), 2)
	}
	return start, end
}
