package notam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yegors/notamify/internal/observability"
	"github.com/yegors/notamify/pkg/logger"
)

const userAgent = "Notamify-Server/0.1.0"

// pageCapMargin is the slack added to the expected page count before the
// aggregation loop gives up. The literal stop rule (collected >= total, or an
// empty/short page) can spin forever against a provider whose totals drift
// between pages; the cap turns that into an explicit IncompleteError.
const pageCapMargin = 3

// ClientConfig contains the settings for the Notamify API client
type ClientConfig struct {
	BaseURL            string
	APIKey             string
	RequestTimeoutSecs int
}

// Client handles HTTP requests to the Notamify API. One Client is created at
// startup and shared for the life of the process; it holds no per-request
// state beyond the immutable configuration.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *logger.Logger
}

// NewClient creates a new Notamify API client
func NewClient(config ClientConfig, metrics *observability.Metrics, logger *logger.Logger) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeoutSecs) * time.Second,
		},
		metrics: metrics,
		logger:  logger.Named("notam-client"),
	}
}

// Close releases the client's idle connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// GetNOTAMs retrieves every page of NOTAMs matching the query and combines
// them into a single result. Pages are fetched strictly sequentially starting
// at the query's page; each response's total_count updates the running total.
// The walk stops when the collected count reaches the most recently reported
// total, or when a page comes back empty or short (the provider has run out
// of items regardless of what its total claims).
//
// Any transport failure aborts the whole aggregation: a partial list would
// misrepresent the total_count semantics of the combined result.
func (c *Client) GetNOTAMs(ctx context.Context, query Query) (*AggregateResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("per_page", strconv.Itoa(query.PerPage))
	for _, location := range query.Locations {
		params.Add("location", location)
	}
	if query.StartsAt != "" {
		params.Set("starts_at", query.StartsAt)
	}
	if query.EndsAt != "" {
		params.Set("ends_at", query.EndsAt)
	}
	for _, id := range query.NotamIDs {
		params.Add("notam_ids", id)
	}

	started := time.Now()

	var collected []Record
	var last *pageResponse
	totalCount := 0
	pagesFetched := 0
	maxPages := 0

	for page := query.Page; ; page++ {
		if pagesFetched > 0 && pagesFetched >= maxPages {
			c.logger.Error("Aggregation hit page cap without converging",
				logger.Int("pages_fetched", pagesFetched),
				logger.Int("collected", len(collected)),
				logger.Int("total_count", totalCount))
			return nil, &IncompleteError{
				PagesFetched: pagesFetched,
				Collected:    len(collected),
				TotalCount:   totalCount,
			}
		}

		response, err := c.fetchPage(ctx, params, page)
		if err != nil {
			return nil, err
		}
		pagesFetched++
		if pagesFetched == 1 {
			// Cap derived from the first snapshot of the provider's total;
			// later drift in total_count must not move the bound.
			maxPages = pageCap(response.TotalCount, query.PerPage)
		}

		totalCount = response.TotalCount
		collected = append(collected, response.Notams...)
		last = response

		c.logger.Debug("Fetched NOTAM page",
			logger.Int("page", page),
			logger.Int("page_items", len(response.Notams)),
			logger.Int("collected", len(collected)),
			logger.Int("total_count", totalCount))

		if len(collected) >= totalCount {
			break
		}
		if len(response.Notams) < query.PerPage {
			// Short or empty page below the declared total: the provider has
			// no more items to give. Under-collection here is expected, not
			// an error.
			c.logger.Warn("NOTAM source ran out of items below its declared total",
				logger.Int("collected", len(collected)),
				logger.Int("total_count", totalCount))
			break
		}
	}

	c.metrics.PagesPerAggregation.Observe(float64(pagesFetched))
	c.metrics.NotamsCollected.Observe(float64(len(collected)))

	c.logger.Info("NOTAM aggregation complete",
		logger.Int("pages", pagesFetched),
		logger.Int("notams", len(collected)),
		logger.Int("total_count", totalCount),
		logger.String("locations", strings.Join(query.Locations, ",")),
		logger.Duration("elapsed", time.Since(started)))

	// Page 1 plus per_page = collected count marks this as a combined,
	// non-paged view rather than any single provider page.
	return &AggregateResult{
		Notams:     collected,
		TotalCount: totalCount,
		Page:       1,
		PerPage:    len(collected),
		Extra:      last.Extra,
	}, nil
}

// fetchPage issues a single synchronous page request. There is no per-page
// retry: one failure fails the whole aggregation.
func (c *Client) fetchPage(ctx context.Context, base url.Values, page int) (*pageResponse, error) {
	params := url.Values{}
	for key, values := range base {
		params[key] = values
	}
	params.Set("page", strconv.Itoa(page))

	requestURL := fmt.Sprintf("%s/notams?%s", c.config.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		c.logger.Error("NOTAM page request failed",
			logger.Int("page", page),
			logger.Error(err))
		return nil, &TransportError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		c.logger.Error("NOTAM source returned non-success status",
			logger.Int("page", page),
			logger.Int("status_code", resp.StatusCode))
		return nil, &TransportError{
			Page:       page,
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(body)),
		}
	}

	var response pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &TransportError{Page: page, Err: fmt.Errorf("error decoding response: %w", err)}
	}

	c.metrics.UpstreamRequests.WithLabelValues("success").Inc()
	return &response, nil
}

// pageCap bounds the number of page fetches for one aggregation, based on
// the first reported total.
func pageCap(totalCount, perPage int) int {
	if totalCount <= 0 || perPage <= 0 {
		return 1 + pageCapMargin
	}
	return (totalCount+perPage-1)/perPage + pageCapMargin
}
