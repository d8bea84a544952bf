// Package handler contains HTTP handlers for the pagination demo.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/text/language"

	"github.com/DukeRupert/pagenav/internal/domain"
	"github.com/DukeRupert/pagenav/internal/metrics"
	"github.com/DukeRupert/pagenav/internal/middleware"
	"github.com/DukeRupert/pagenav/internal/paginator"
	"github.com/DukeRupert/pagenav/internal/storage"
	"github.com/DukeRupert/pagenav/internal/templ/components/pagination"
	"github.com/DukeRupert/pagenav/internal/templ/pages/items"
)

// PageConfig holds the pagination defaults applied to every request.
type PageConfig struct {
	ItemsPerPage         int
	DefaultPage          int
	MaxPagesToShow       int
	AlwaysShowPagination bool
	URLPattern           string
	Title                string
	Locale               language.Tag
}

// PageHandler serves paginated views over an item source.
type PageHandler struct {
	store  storage.Storage
	cfg    PageConfig
	logger *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(store storage.Storage, cfg PageConfig, logger *slog.Logger) *PageHandler {
	if cfg.Title == "" {
		cfg.Title = "items"
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}
	return &PageHandler{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes registers the page routes on the provided ServeMux.
// The api middlewares wrap /api/pages only, first listed runs first.
//
// Routes registered:
// - GET /           -> Index (HTML list with pagination nav)
// - GET /api/pages  -> Summary (JSON pagination summary)
// - GET /...        -> NotFound for any other GET path
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux, api ...func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.Handle("GET /api/pages", middleware.Stack(api...)(http.HandlerFunc(h.Summary)))
	mux.HandleFunc("GET /", h.NotFound)
}

// NotFound answers paths no route claims.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundResponse(w, r, h.logger)
}

// pageQuery is the pagination state requested by a client.
type pageQuery struct {
	page         int
	itemsPerPage int
	maxPages     int
	alwaysShow   bool
}

// Index renders the item list for ?page=N.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := pageQuery{
		itemsPerPage: h.cfg.ItemsPerPage,
		maxPages:     h.cfg.MaxPagesToShow,
		alwaysShow:   h.cfg.AlwaysShowPagination,
	}
	var err error
	if q.page, err = intParam(r, "page", h.cfg.DefaultPage); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	p, err := h.paginate(r.Context(), q)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	summary := h.summarize(p)

	display := make([]items.DisplayItem, len(summary.Items))
	for i, it := range summary.Items {
		display[i] = items.DisplayItem{ID: it.ID, Title: it.Title}
	}

	data := items.IndexPageData{
		Title:      h.cfg.Title,
		Items:      display,
		Pagination: pagination.FromSummary(summary),
		Nav:        pagination.DefaultConfig(),
		Locale:     h.cfg.Locale,
		RequestID:  middleware.GetRequestID(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := items.IndexPage(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render items index", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Summary returns the pagination summary as JSON. Besides page, clients may
// override per_page, max_pages and always_show.
func (h *PageHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	p, err := h.paginate(r.Context(), q)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, h.summarize(p)); err != nil {
		h.logger.Error("failed to encode summary", "error", err)
	}
}

func (h *PageHandler) parseQuery(r *http.Request) (pageQuery, error) {
	var q pageQuery
	var err error

	if q.page, err = intParam(r, "page", h.cfg.DefaultPage); err != nil {
		return q, err
	}
	if q.itemsPerPage, err = intParam(r, "per_page", h.cfg.ItemsPerPage); err != nil {
		return q, err
	}
	if q.maxPages, err = intParam(r, "max_pages", h.cfg.MaxPagesToShow); err != nil {
		return q, err
	}

	q.alwaysShow = h.cfg.AlwaysShowPagination
	if v := r.URL.Query().Get("always_show"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, domain.Invalid("handler.parseQuery", "always_show must be a boolean")
		}
		q.alwaysShow = b
	}
	return q, nil
}

// paginate builds a paginator over the store's items. The total comes from
// Count, not from the length of the item list.
func (h *PageHandler) paginate(ctx context.Context, q pageQuery) (*paginator.Paginator[storage.Item], error) {
	all, err := h.store.Items(ctx)
	if err != nil {
		return nil, domain.Internal(err, "handler.paginate", "failed to load items")
	}
	count, err := h.store.Count(ctx)
	if err != nil {
		return nil, domain.Internal(err, "handler.paginate", "failed to count items")
	}

	p, err := paginator.New(all, q.itemsPerPage, q.page, h.cfg.URLPattern)
	if err == nil {
		err = p.SetTotalItem(count)
	}
	if err == nil {
		err = p.SetMaxPagesToShow(q.maxPages)
	}
	if err != nil {
		if errors.Is(err, paginator.ErrInvalidConfiguration) {
			metrics.InvalidConfiguration(domain.ErrorOp(err))
		}
		return nil, err
	}
	p.SetAlwaysShowPagination(q.alwaysShow)

	return p, nil
}

func (h *PageHandler) summarize(p *paginator.Paginator[storage.Item]) paginator.Summary[storage.Item] {
	s := p.Summary()
	metrics.ObserveWindow(s.Pages)
	if s.TotalPages > 0 && s.CurrentPage > s.TotalPages {
		metrics.RequestsBeyondLastPage.Inc()
	}
	return s
}

// intParam reads an integer query parameter, returning fallback when absent.
// Range checks are left to the paginator.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.Invalid("handler.intParam", name+" must be an integer")
	}
	return n, nil
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
