package ipo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/JonMunkholm/ipoadmin/internal/core"
)

const listingBody = `{
	"success": true,
	"count": 2,
	"data": [
		{"id": 7, "name": "Acme IPO", "open": "Mar 1, 2025", "close": "Mar 5, 2025",
		 "min_price": "100", "max_price": "120", "lot_size": 50,
		 "current_status": "open", "created_at": "2025-02-20T10:00:00Z"},
		{"id": 8, "name": "Beta Ltd", "min_price": "n/a", "current_status": "closed"}
	],
	"pagination": {"total": 32, "page": 2, "limit": 2, "totalPages": 16, "hasNextPage": true, "hasPrevPage": true}
}`

func newListingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/ipos" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchIPOs(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL + "/"})
	res := c.FetchIPOs(context.Background(), 2, 2)

	if res.Failed() {
		t.Fatalf("FetchIPOs() error = %q", res.Error)
	}
	if gotQuery != "limit=2&page=2" {
		t.Errorf("query = %q, want limit=2&page=2", gotQuery)
	}
	if len(res.IPOs) != 2 {
		t.Fatalf("len(IPOs) = %d, want 2", len(res.IPOs))
	}

	acme := res.IPOs[0]
	if acme.ID != "7" || acme.OpenDate != "2025-03-01" || acme.Status != core.IPOLive || acme.CreatedAt != "2025-02-20" {
		t.Errorf("IPOs[0] = %+v", acme)
	}
	if res.IPOs[1].PriceBand.Min != 0 || res.IPOs[1].Status != core.IPOClosed {
		t.Errorf("IPOs[1] = %+v", res.IPOs[1])
	}

	want := Pagination{Total: 32, Page: 2, Limit: 2, TotalPages: 16, HasNextPage: true, HasPrevPage: true}
	if res.Pagination != want {
		t.Errorf("Pagination = %+v, want %+v", res.Pagination, want)
	}
}

func TestFetchIPOsMissingPagination(t *testing.T) {
	srv, _ := newListingServer(t, http.StatusOK, `{"success":true,"count":3,"data":[{"id":1}]}`)

	res := NewClient(Options{BaseURL: srv.URL}).FetchIPOs(context.Background(), 4, 25)

	want := Pagination{Total: 3, Page: 4, Limit: 25, TotalPages: 1}
	if res.Pagination != want {
		t.Errorf("Pagination = %+v, want %+v", res.Pagination, want)
	}
}

func TestFetchIPOsNullData(t *testing.T) {
	srv, _ := newListingServer(t, http.StatusOK, `{"success":true,"count":0,"data":null}`)

	res := NewClient(Options{BaseURL: srv.URL}).FetchIPOs(context.Background(), 1, 10)
	if res.Failed() {
		t.Fatalf("FetchIPOs() error = %q", res.Error)
	}
	if res.IPOs == nil || len(res.IPOs) != 0 {
		t.Errorf("IPOs = %#v, want empty non-nil", res.IPOs)
	}
}

func TestFetchIPOsToleratesOffTypeRecords(t *testing.T) {
	body := `{
		"success": true,
		"data": [
			{"id": 1, "name": "Good IPO", "min_price": "100", "current_status": "open"},
			{"id": 2, "name": 12345, "issue_size": 1500, "premium": 12, "is_buyer": true,
			 "current_status": "closed", "lead_managers": "Axis Capital"},
			7
		],
		"pagination": {"total": 3, "page": 1, "limit": 10, "totalPages": 1}
	}`
	srv, _ := newListingServer(t, http.StatusOK, body)

	res := NewClient(Options{BaseURL: srv.URL}).FetchIPOs(context.Background(), 1, 10)
	if res.Failed() {
		t.Fatalf("FetchIPOs() error = %q", res.Error)
	}
	if len(res.IPOs) != 3 {
		t.Fatalf("len(IPOs) = %d, want 3", len(res.IPOs))
	}

	if got := res.IPOs[0]; got.Name != "Good IPO" || got.PriceBand.Min != 100 || got.Status != core.IPOLive {
		t.Errorf("IPOs[0] = %+v", got)
	}
	odd := res.IPOs[1]
	if odd.ID != "2" || odd.Name != "12345" || odd.IssueSize != "1500" || odd.Premium != "12" || odd.Status != core.IPOClosed {
		t.Errorf("IPOs[1] = %+v", odd)
	}
	if len(odd.LeadManagers) != 0 {
		t.Errorf("IPOs[1].LeadManagers = %v, want none", odd.LeadManagers)
	}
	if got := res.IPOs[2]; got.ID != "" || got.Status != core.IPOUpcoming {
		t.Errorf("IPOs[2] = %+v, want defaults", got)
	}
}

func TestFetchIPOsFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantError string
	}{
		{"server error", http.StatusServiceUnavailable, `oops`, "Failed to load: 503"},
		{"not found", http.StatusNotFound, `{}`, "Failed to load: 404"},
		{"bad json", http.StatusOK, `{"data": [`, "decode remote listing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newListingServer(t, tt.status, tt.body)
			res := NewClient(Options{BaseURL: srv.URL}).FetchIPOs(context.Background(), 3, 20)

			if !strings.HasPrefix(res.Error, tt.wantError) {
				t.Errorf("Error = %q, want prefix %q", res.Error, tt.wantError)
			}
			if res.IPOs == nil || len(res.IPOs) != 0 {
				t.Errorf("IPOs = %#v, want empty", res.IPOs)
			}
			if want := (Pagination{Page: 1, Limit: 20}); res.Pagination != want {
				t.Errorf("Pagination = %+v, want %+v", res.Pagination, want)
			}
		})
	}
}

func TestFetchIPOsTransportError(t *testing.T) {
	srv, _ := newListingServer(t, http.StatusOK, listingBody)
	srv.Close()

	res := NewClient(Options{BaseURL: srv.URL}).FetchIPOs(context.Background(), 1, 10)
	if !res.Failed() {
		t.Fatal("FetchIPOs() against closed server should fail")
	}
	if len(res.IPOs) != 0 {
		t.Errorf("len(IPOs) = %d, want 0", len(res.IPOs))
	}
}

func TestFetchIPOsCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res := NewClient(Options{BaseURL: srv.URL}).FetchIPOs(ctx, 1, 10)
	if !strings.Contains(res.Error, "context canceled") {
		t.Errorf("Error = %q, want context canceled", res.Error)
	}
}

func TestFetchIPOsDefaults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, PageSize: 15})
	c.FetchIPOs(context.Background(), 0, 0)

	if gotQuery != "limit=15&page=1" {
		t.Errorf("query = %q, want limit=15&page=1", gotQuery)
	}
}

func TestFetchIPOsCache(t *testing.T) {
	srv, hits := newListingServer(t, http.StatusOK, listingBody)
	c := NewClient(Options{BaseURL: srv.URL, CacheTTL: time.Minute})
	ctx := context.Background()

	first := c.FetchIPOs(ctx, 2, 2)
	first.IPOs[0].Name = "mutated"

	second := c.FetchIPOs(ctx, 2, 2)
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
	if second.IPOs[0].Name != "Acme IPO" {
		t.Errorf("cached IPO name = %q, want unmodified", second.IPOs[0].Name)
	}

	c.FetchIPOs(ctx, 3, 2)
	if hits.Load() != 2 {
		t.Errorf("hits after new page = %d, want 2", hits.Load())
	}

	c.Invalidate()
	c.FetchIPOs(ctx, 2, 2)
	if hits.Load() != 3 {
		t.Errorf("hits after Invalidate = %d, want 3", hits.Load())
	}
}

func TestFetchIPOsFailuresNotCached(t *testing.T) {
	srv, hits := newListingServer(t, http.StatusBadGateway, ``)
	c := NewClient(Options{BaseURL: srv.URL, CacheTTL: time.Minute})

	c.FetchIPOs(context.Background(), 1, 10)
	c.FetchIPOs(context.Background(), 1, 10)
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", hits.Load())
	}
}

func TestFetchIPOsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	srv, _ := newListingServer(t, http.StatusOK, listingBody)
	c := NewClient(Options{BaseURL: srv.URL, CacheTTL: time.Minute, Meter: provider.Meter("test")})
	c.FetchIPOs(context.Background(), 1, 10)
	c.FetchIPOs(context.Background(), 1, 10)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "ipoadmin.ipo.fetches" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("fetches data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("outcome")
				counts[v.AsString()] += dp.Value
			}
		}
	}

	if counts[outcomeOK] != 1 || counts[outcomeCached] != 1 {
		t.Errorf("fetch counts = %v, want ok=1 cached=1", counts)
	}
}
