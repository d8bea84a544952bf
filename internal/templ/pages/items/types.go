package items

import (
	"github.com/DukeRupert/pagenav/internal/templ/components/pagination"
	"golang.org/x/text/language"
)

// DisplayItem contains item data formatted for display
type DisplayItem struct {
	ID    int
	Title string
}

// IndexPageData contains data for the item list page
type IndexPageData struct {
	Title      string
	Items      []DisplayItem
	Pagination pagination.Data
	Nav        pagination.Config
	Locale     language.Tag
	RequestID  string
}
