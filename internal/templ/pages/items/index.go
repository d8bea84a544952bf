// Package items renders the paginated item list page.
package items

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"

	"github.com/DukeRupert/pagenav/internal/templ/components/pagination"
)

// BootstrapCSS is the stylesheet the page links to.
const BootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.2.3/dist/css/bootstrap.min.css"

// IndexPage renders the full HTML document: the current page's items, the
// pagination nav, and the "N found" footer.
func IndexPage(data IndexPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := cases.Title(data.Locale).String(data.Title)

		head := `<!DOCTYPE html><html lang="` + templ.EscapeString(data.Locale.String()) + `"><head>` +
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<link rel="stylesheet" href="` + BootstrapCSS + `">` +
			`</head><body><main class="container py-4"`
		if data.RequestID != "" {
			head += ` data-request-id="` + templ.EscapeString(data.RequestID) + `"`
		}
		head += `><h1 class="h3 mb-3">` + templ.EscapeString(title) + `</h1>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}

		if err := itemList(data.Items).Render(ctx, w); err != nil {
			return err
		}
		if err := pagination.Nav(data.Pagination, data.Nav).Render(ctx, w); err != nil {
			return err
		}
		if err := pagination.Footer(data.Pagination, data.Locale).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func itemList(items []DisplayItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(items) == 0 {
			_, err := io.WriteString(w, `<p class="text-muted">No items on this page.</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<ul class="list-group mb-3">`); err != nil {
			return err
		}
		for _, it := range items {
			li := `<li class="list-group-item" id="item-` + strconv.Itoa(it.ID) + `">` + templ.EscapeString(it.Title) + `</li>`
			if _, err := io.WriteString(w, li); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}
