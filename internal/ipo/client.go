package ipo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/metric"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/logging"
)

// Client defaults.
const (
	DefaultBaseURL  = "https://api.ipogmptracker.com/api"
	DefaultTimeout  = 10 * time.Second
	DefaultPageSize = 10

	// maxBodyBytes bounds the listing response read into memory.
	maxBodyBytes = 8 << 20
)

// FetchResult is one page of the listing. A failed fetch has no IPOs, a
// zeroed Pagination on page 1 and a non-empty Error.
type FetchResult struct {
	IPOs       []core.IPO `json:"ipos"`
	Pagination Pagination `json:"pagination"`
	Error      string     `json:"error,omitempty"`
}

// Failed reports whether the fetch failed.
func (r FetchResult) Failed() bool { return r.Error != "" }

// Options configures a Client. Zero values take the defaults above.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	PageSize   int
	CacheTTL   time.Duration // 0 disables caching
	HTTPClient *http.Client
	Meter      metric.Meter // nil disables metrics
}

// Client reads pages of the remote listing.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	cache    *cache.Cache
	cacheTTL time.Duration
	metrics  *clientMetrics
}

// NewClient returns a Client configured by opts.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		pageSize: opts.PageSize,
		http:     opts.HTTPClient,
		cacheTTL: opts.CacheTTL,
		metrics:  newClientMetrics(opts.Meter),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.pageSize < 1 {
		c.pageSize = DefaultPageSize
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.cacheTTL > 0 {
		c.cache = cache.New(c.cacheTTL, 2*c.cacheTTL)
	}
	return c
}

// PageSize returns the limit used when a caller passes none.
func (c *Client) PageSize() int { return c.pageSize }

// FetchIPOs reads one page of the listing and normalizes it. It never
// returns an error value: failures are reported in FetchResult.Error.
// A cancelled ctx aborts the request and the result carries the
// cancellation message.
func (c *Client) FetchIPOs(ctx context.Context, page, limit int) FetchResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = c.pageSize
	}
	started := time.Now()
	logger := logging.WithFields(ctx, "page", page, "limit", limit)

	key := cacheKey(page, limit)
	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			logger.Debug("ipo listing cache hit")
			c.metrics.observe(ctx, outcomeCached, started)
			res := cached.(FetchResult)
			res.IPOs = slices.Clone(res.IPOs)
			return res
		}
	}

	listing, outcome, err := c.get(ctx, page, limit)
	c.metrics.observe(ctx, outcome, started)
	if err != nil {
		logger.Warn("ipo listing fetch failed",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
		return failed(limit, err.Error())
	}

	res := FetchResult{
		IPOs:       NormalizeBatch(listing.Records(logger)),
		Pagination: paginationOf(listing, page, limit),
	}
	logger.Debug("ipo listing fetched",
		"count", len(res.IPOs),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if c.cache != nil {
		c.cache.Set(key, res, cache.DefaultExpiration)
		res.IPOs = slices.Clone(res.IPOs)
	}
	return res
}

// Invalidate drops every cached page.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

func (c *Client) get(ctx context.Context, page, limit int) (Listing, string, error) {
	u := c.baseURL + "/ipos?" + url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Listing{}, outcomeTransport, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Listing{}, outcomeTransport, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Listing{}, outcomeStatus, fmt.Errorf("Failed to load: %d", resp.StatusCode)
	}

	var listing Listing
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&listing); err != nil {
		return Listing{}, outcomeDecode, fmt.Errorf("decode remote listing: %w", err)
	}
	return listing, outcomeOK, nil
}

// paginationOf returns the envelope's pagination, or a single page
// holding count records when the upstream omits it.
func paginationOf(l Listing, page, limit int) Pagination {
	if l.Pagination != nil {
		return *l.Pagination
	}
	return Pagination{
		Total:      l.Count,
		Page:       page,
		Limit:      limit,
		TotalPages: 1,
	}
}

func failed(limit int, msg string) FetchResult {
	return FetchResult{
		IPOs:       []core.IPO{},
		Pagination: Pagination{Page: 1, Limit: limit},
		Error:      msg,
	}
}

func cacheKey(page, limit int) string {
	return strconv.Itoa(page) + ":" + strconv.Itoa(limit)
}
