package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/pagenav/internal/domain"
	"github.com/DukeRupert/pagenav/internal/metrics"
	"github.com/DukeRupert/pagenav/internal/middleware"
	"github.com/DukeRupert/pagenav/internal/paginator"
	"github.com/DukeRupert/pagenav/internal/storage"
)

// fakeStorage lets tests report a count that differs from the item list.
type fakeStorage struct {
	items []storage.Item
	count int
	err   error
}

func (f *fakeStorage) Items(ctx context.Context) ([]storage.Item, error) {
	return f.items, f.err
}

func (f *fakeStorage) Count(ctx context.Context) (int, error) {
	return f.count, f.err
}

func demoStore(n int) *fakeStorage {
	return &fakeStorage{items: storage.GenerateItems(n), count: n}
}

func demoConfig() PageConfig {
	return PageConfig{
		ItemsPerPage:   50,
		DefaultPage:    8,
		MaxPagesToShow: 10,
		URLPattern:     "?page=(:num)",
	}
}

func newMux(store storage.Storage, cfg PageConfig) *http.ServeMux {
	mux := http.NewServeMux()
	NewPageHandler(store, cfg, testLogger()).RegisterRoutes(mux)
	return mux
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) paginator.Summary[storage.Item] {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s paginator.Summary[storage.Item]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

// =============================================================================
// GET /
// =============================================================================

func TestIndex_DefaultPage(t *testing.T) {
	rec := get(t, newMux(demoStore(1000), demoConfig()), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Item 351")
	assert.Contains(t, body, "Item 400")
	assert.NotContains(t, body, "Item 401<")
	assert.Contains(t, body, `aria-current="page"><a class="page-link" href="?page=8">8</a>`)
	assert.Contains(t, body, "1,000 found. Showing 351 - 400.")
}

func TestIndex_PageParam(t *testing.T) {
	rec := get(t, newMux(demoStore(1000), demoConfig()), "/?page=20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 951 - 1,000.")
	assert.NotContains(t, rec.Body.String(), "Next")
}

func TestIndex_BeyondLastPage(t *testing.T) {
	before := testutil.ToFloat64(metrics.RequestsBeyondLastPage)

	rec := get(t, newMux(demoStore(1000), demoConfig()), "/?page=999")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No items on this page.")
	assert.NotContains(t, body, `aria-current="page"`)
	assert.Contains(t, body, `href="?page=998">Prev</a>`)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RequestsBeyondLastPage))
}

func TestIndex_InvalidPage(t *testing.T) {
	mux := newMux(demoStore(1000), demoConfig())

	for _, target := range []string{"/?page=abc", "/?page=0", "/?page=-3"} {
		rec := get(t, mux, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestIndex_InvalidPageCountsRejection(t *testing.T) {
	counter := metrics.InvalidConfigurationTotal.WithLabelValues("paginator.New")
	before := testutil.ToFloat64(counter)

	get(t, newMux(demoStore(10), demoConfig()), "/?page=0")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestIndex_OnlyRoot(t *testing.T) {
	rec := get(t, newMux(demoStore(10), demoConfig()), "/elsewhere")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `path "/elsewhere" not found`)
}

func TestUnknownAPIPath_JSONNotFound(t *testing.T) {
	rec := get(t, newMux(demoStore(10), demoConfig()), "/api/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body JSONError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.ENOTFOUND, body.Error.Code)
}

func TestIndex_HugePage(t *testing.T) {
	rec := get(t, newMux(demoStore(1000), demoConfig()), "/?page=9223372036854775807")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No items on this page.")
	assert.Contains(t, rec.Body.String(), "<p>1,000 found.</p>")
}

func TestIndex_StorageFailure(t *testing.T) {
	store := &fakeStorage{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}

	rec := get(t, newMux(store, demoConfig()), "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

// =============================================================================
// GET /api/pages
// =============================================================================

func TestSummary_Default(t *testing.T) {
	s := decodeSummary(t, get(t, newMux(demoStore(1000), demoConfig()), "/api/pages"))

	assert.Equal(t, 1000, s.TotalItems)
	assert.Equal(t, 20, s.TotalPages)
	assert.Equal(t, 8, s.CurrentPage)
	assert.Len(t, s.Items, 50)
	assert.Equal(t, 351, s.Items[0].ID)
	assert.Len(t, s.Pages, 12)
	require.NotNil(t, s.PrevURL)
	assert.Equal(t, "?page=7", *s.PrevURL)
}

func TestSummary_JSONNulls(t *testing.T) {
	rec := get(t, newMux(demoStore(1000), demoConfig()), "/api/pages?page=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))

	assert.Contains(t, raw, "prev_url")
	assert.Nil(t, raw["prev_url"])
	assert.Nil(t, raw["first_url"])
	assert.Equal(t, "?page=2", raw["next_url"])
}

func TestSummary_Overrides(t *testing.T) {
	mux := newMux(demoStore(100), demoConfig())

	s := decodeSummary(t, get(t, mux, "/api/pages?page=5&per_page=10&max_pages=3"))
	assert.Equal(t, 10, s.TotalPages)
	assert.Len(t, s.Items, 10)

	labels := make([]string, len(s.Pages))
	for i, pg := range s.Pages {
		labels[i] = pg.Label
	}
	assert.Equal(t, "1 ... 5 ... 10", strings.Join(labels, " "))

	s = decodeSummary(t, get(t, newMux(demoStore(5), demoConfig()), "/api/pages?page=1&always_show=true"))
	assert.Len(t, s.Pages, 1)
}

func TestSummary_TotalFromCount(t *testing.T) {
	store := &fakeStorage{items: storage.GenerateItems(30), count: 95}
	cfg := demoConfig()
	cfg.ItemsPerPage = 10

	s := decodeSummary(t, get(t, newMux(store, cfg), "/api/pages?page=5"))

	assert.Equal(t, 95, s.TotalItems)
	assert.Equal(t, 10, s.TotalPages)
	assert.Empty(t, s.Items)
	require.NotNil(t, s.FirstItem)
	assert.Equal(t, 41, *s.FirstItem)
}

func TestSummary_IntBounds(t *testing.T) {
	mux := newMux(demoStore(1000), demoConfig())

	for _, page := range []int{1 << 62, math.MaxInt / 2, math.MaxInt} {
		s := decodeSummary(t, get(t, mux, "/api/pages?page="+strconv.Itoa(page)))

		assert.Empty(t, s.Items, "page=%d", page)
		assert.Nil(t, s.FirstItem, "page=%d", page)
		assert.Nil(t, s.LastItem, "page=%d", page)
		assert.Nil(t, s.NextPage, "page=%d", page)
		require.NotNil(t, s.PrevPage)
		assert.Equal(t, page-1, *s.PrevPage)
		for i := 1; i < len(s.Pages); i++ {
			assert.False(t, s.Pages[i].IsEllipsis && s.Pages[i-1].IsEllipsis, "page=%d: consecutive ellipses", page)
		}
	}

	s := decodeSummary(t, get(t, mux, "/api/pages?page=1&per_page="+strconv.Itoa(math.MaxInt)))
	assert.Equal(t, 1, s.TotalPages)
	assert.Len(t, s.Items, 1000)
	require.NotNil(t, s.LastItem)
	assert.Equal(t, 1000, *s.LastItem)

	s = decodeSummary(t, get(t, mux, "/api/pages?page="+strconv.Itoa(math.MaxInt)+"&per_page="+strconv.Itoa(math.MaxInt)))
	assert.Equal(t, 1, s.TotalPages)
	assert.Empty(t, s.Items)
}

func TestRegisterRoutes_APIMiddleware(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Api", "1")
			next.ServeHTTP(w, r)
		})
	}
	mux := http.NewServeMux()
	NewPageHandler(demoStore(10), demoConfig(), testLogger()).RegisterRoutes(mux, tag)

	assert.Equal(t, "1", get(t, mux, "/api/pages").Header().Get("X-Api"))
	assert.Empty(t, get(t, mux, "/").Header().Get("X-Api"))
}

func TestRegisterRoutes_RateLimitsAPI(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Close()

	mux := http.NewServeMux()
	NewPageHandler(demoStore(10), demoConfig(), testLogger()).
		RegisterRoutes(mux, middleware.NewRateLimitMiddleware(limiter, testLogger()).Limit)

	assert.Equal(t, http.StatusOK, get(t, mux, "/api/pages?page=1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, mux, "/api/pages?page=1").Code)
	assert.Equal(t, http.StatusOK, get(t, mux, "/").Code, "html page is not limited")
}

func TestSummary_InvalidParams(t *testing.T) {
	mux := newMux(demoStore(100), demoConfig())

	tests := []string{
		"/api/pages?per_page=0",
		"/api/pages?max_pages=2",
		"/api/pages?always_show=maybe",
		"/api/pages?page=x",
	}
	for _, target := range tests {
		rec := get(t, mux, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body JSONError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), target)
		assert.Equal(t, domain.EINVALID, body.Error.Code, target)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
