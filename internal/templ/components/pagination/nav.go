package pagination

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Edge link labels.
const (
	firstLabel = "«"
	prevLabel  = "Prev"
	nextLabel  = "Next"
	lastLabel  = "»"
)

// Nav renders the navigation bar: «, Prev, the page window, Next and ».
// Each edge link is only rendered when the paginator provides its URL.
// Nothing is rendered when the window is empty.
func Nav(data Data, cfg Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !data.Visible() {
			return nil
		}

		var b strings.Builder
		b.WriteString(`<nav aria-label="` + templ.EscapeString(cfg.Label) + `">`)
		b.WriteString(`<ul class="` + templ.EscapeString(cfg.listClass()) + `">`)

		edge := func(url, label string) {
			if url != "" {
				writeItem(&b, cfg, url, label, false)
			}
		}
		edge(data.FirstURL, firstLabel)
		edge(data.PrevURL, prevLabel)

		for _, pg := range data.Pages {
			if pg.IsEllipsis {
				b.WriteString(`<li class="` + templ.EscapeString(cfg.itemClass(false)) + `">`)
				b.WriteString(`<a class="` + templ.EscapeString(cfg.linkClass()) + `">` + templ.EscapeString(pg.Label) + `</a></li>`)
				continue
			}
			writeItem(&b, cfg, pg.URL, pg.Label, pg.IsCurrent)
		}

		edge(data.NextURL, nextLabel)
		edge(data.LastURL, lastLabel)

		b.WriteString(`</ul></nav>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// writeItem writes one linked list item.
func writeItem(b *strings.Builder, cfg Config, url, label string, current bool) {
	b.WriteString(`<li class="` + templ.EscapeString(cfg.itemClass(current)) + `"`)
	if current {
		b.WriteString(` aria-current="page"`)
	}
	b.WriteString(`><a class="` + templ.EscapeString(cfg.linkClass()) + `" href="`)
	b.WriteString(templ.EscapeString(string(templ.URL(url))))
	b.WriteString(`">` + templ.EscapeString(label) + `</a></li>`)
}

// Footer renders "N found. Showing A - B." with numbers formatted for tag.
// The range is omitted when the current page holds no items.
func Footer(data Data, tag language.Tag) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString(FooterText(data, tag))+"</p>")
		return err
	})
}

// FooterText is the plain text of Footer.
func FooterText(data Data, tag language.Tag) string {
	p := message.NewPrinter(tag)
	if !data.HasRange {
		return p.Sprintf("%d found.", data.TotalItems)
	}
	return p.Sprintf("%d found. Showing %d - %d.", data.TotalItems, data.FirstItem, data.LastItem)
}
