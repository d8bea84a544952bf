// Package cli implements the paginate command.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/DukeRupert/pagenav/internal/paginator"
	"github.com/DukeRupert/pagenav/internal/storage"
	"github.com/DukeRupert/pagenav/internal/templ/components/pagination"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrInvalidOutput is returned for an unknown --output value.
var ErrInvalidOutput = errors.New("output must be one of: text, json, yaml")

// options holds the flag values of the root command.
type options struct {
	items        int
	total        int
	totalSet     bool
	itemsPerPage int
	page         int
	maxPages     int
	alwaysShow   bool
	urlPattern   string
	output       string
}

// NewRootCmd creates the paginate command.
func NewRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "paginate",
		Short: "Print the pagination window for a generated collection",
		Long: `Builds a paginator over a generated collection of items and prints the
page window, adjacent page URLs and the current page's item range.

The total item count defaults to the collection size. Use --total to paginate
as if the collection were counted elsewhere.`,
		Example: `  # The demo defaults: page 8 of 1000 items at 50 per page
  paginate

  # A narrow window as YAML
  paginate --items 100 --per-page 10 --page 5 --max-pages 3 --output yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.totalSet = cmd.Flags().Changed("total")
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.items, "items", 1000, "number of generated items")
	f.IntVar(&opts.total, "total", 0, "total item count override (defaults to the collection size)")
	f.IntVar(&opts.itemsPerPage, "per-page", 50, "items per page")
	f.IntVar(&opts.page, "page", 8, "current page (1-based)")
	f.IntVar(&opts.maxPages, "max-pages", paginator.DefaultMaxPagesToShow, "number of entries the page window aims for")
	f.BoolVar(&opts.alwaysShow, "always-show", false, "show the window even for a single page")
	f.StringVar(&opts.urlPattern, "url-pattern", "?page="+paginator.NumPlaceholder, "page URL pattern")
	f.StringVarP(&opts.output, "output", "o", OutputText, "output format: text, json or yaml")

	return cmd
}

func run(ctx context.Context, w io.Writer, opts options) error {
	switch opts.output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidOutput, opts.output)
	}

	store, err := storage.NewMemoryStorage(opts.items, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	items, err := store.Items(ctx)
	if err != nil {
		return err
	}

	p, err := paginator.New(items, opts.itemsPerPage, opts.page, opts.urlPattern)
	if err != nil {
		return err
	}
	if opts.totalSet {
		if err := p.SetTotalItem(opts.total); err != nil {
			return err
		}
	}
	if err := p.SetMaxPagesToShow(opts.maxPages); err != nil {
		return err
	}
	p.SetAlwaysShowPagination(opts.alwaysShow)

	summary := p.Summary()

	switch opts.output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, summary)
	}
}

// writeText prints the window, the adjacent links and the item range.
func writeText(w io.Writer, s paginator.Summary[storage.Item]) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Page %d of %d\n", s.CurrentPage, s.TotalPages)
	if line := WindowLine(s.Pages); line != "" {
		b.WriteString(line + "\n")
	}
	for _, link := range []struct {
		name string
		url  *string
	}{
		{"first", s.FirstURL},
		{"prev", s.PrevURL},
		{"next", s.NextURL},
		{"last", s.LastURL},
	} {
		if link.url != nil {
			fmt.Fprintf(&b, "%-5s %s\n", link.name, *link.url)
		}
	}
	b.WriteString(pagination.FooterText(pagination.FromSummary(s), language.English) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WindowLine renders a page window as "1 ... 4 [5] 6 ... 10".
func WindowLine(pages []paginator.Page) string {
	parts := make([]string, len(pages))
	for i, pg := range pages {
		if pg.IsCurrent {
			parts[i] = "[" + pg.Label + "]"
		} else {
			parts[i] = pg.Label
		}
	}
	return strings.Join(parts, " ")
}
