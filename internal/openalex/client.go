package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/helixir/openalex-mcp/internal/budget"
	"github.com/helixir/openalex-mcp/internal/config"
	"github.com/helixir/openalex-mcp/internal/observability"
)

const (
	// maxErrorBody caps how much of an error response body is captured.
	maxErrorBody = 1 << 20
	// maxResponseBody caps JSON response bodies to prevent resource exhaustion.
	maxResponseBody = 10 << 20
)

// Client is the request gateway for the OpenAlex API. One Client is created
// at process start and shared by all tool invocations; the admission gate
// and rate limiter therefore bound the whole process, not a single call.
// It is safe for concurrent use.
type Client struct {
	cfg      config.OpenAlexConfig
	http     *http.Client
	download *http.Client
	gate     *semaphore.Weighted
	limiter  *rate.Limiter
	tracker  *budget.Tracker
	logger   zerolog.Logger
	metrics  *observability.Metrics
	maxBytes int64
}

// New creates a new gateway client. The metrics argument may be nil, in
// which case no metrics are recorded.
func New(cfg config.OpenAlexConfig, dl config.DownloadConfig, logger zerolog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		download: &http.Client{
			Timeout: dl.Timeout,
		},
		gate:     semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.BurstSize),
		tracker:  budget.NewTracker(int64(cfg.DailyLimit), logger),
		logger:   logger,
		metrics:  metrics,
		maxBytes: dl.MaxSizeBytes,
	}
}

// acquire claims one slot from the admission gate, suspending until a slot
// frees or the context is done. The returned release function must be
// called exactly once.
func (c *Client) acquire(ctx context.Context) (func(), error) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, &TransportError{Err: err}
	}
	if c.metrics != nil {
		c.metrics.UpstreamInFlight.Inc()
	}
	return func() {
		if c.metrics != nil {
			c.metrics.UpstreamInFlight.Dec()
		}
		c.gate.Release(1)
	}, nil
}

// get performs a single GET against the API and decodes the JSON response
// into out. One attempt only: no retry, no backoff.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	release, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Err: err}
	}

	reqURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return fmt.Errorf("building request URL: %w", err)
	}

	if c.cfg.LogRequests {
		c.logger.Debug().Str("url", reqURL).Msg("making request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent())
	req.Header.Set("Accept", "application/json")

	label := endpointLabel(endpoint)
	c.tracker.Record()
	start := time.Now()
	resp, err := c.http.Do(req)
	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(label).Inc()
		c.metrics.UpstreamRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamRequestsFailed.WithLabelValues(label, "transport").Inc()
		}
		terr := &TransportError{Err: err}
		c.logger.Error().Err(terr).Str("endpoint", endpoint).Msg("upstream request failed")
		return terr
	}
	defer resp.Body.Close()

	if c.cfg.LogRequests {
		c.logger.Debug().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("response received")
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.metrics != nil {
			c.metrics.UpstreamRequestsFailed.WithLabelValues(label, "upstream").Inc()
		}
		uerr := &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
		c.logger.Error().Err(uerr).Str("endpoint", endpoint).Msg("upstream returned error")
		return uerr
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// buildURL joins the endpoint path onto the base URL and appends the query
// parameters plus the mailto parameter when an email is configured.
func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	// Direct path concatenation: entity IDs may themselves be URIs
	// (https://doi.org/...) and OpenAlex expects them verbatim in the path.
	base.Path = "/" + strings.TrimPrefix(endpoint, "/")

	query := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	if c.cfg.Email != "" {
		query.Set("mailto", c.cfg.Email)
	}
	base.RawQuery = query.Encode()

	return base.String(), nil
}

// endpointLabel reduces an endpoint path to its leading segment for use as
// a metric label, keeping label cardinality bounded.
func endpointLabel(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(endpoint, '/'); i > 0 {
		return endpoint[:i]
	}
	return endpoint
}

// ListWorks queries the works list endpoint.
func (c *Client) ListWorks(ctx context.Context, params url.Values) (*WorksResponse, error) {
	var resp WorksResponse
	if err := c.get(ctx, "works", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAuthors queries the authors list endpoint.
func (c *Client) ListAuthors(ctx context.Context, params url.Values) (*AuthorsResponse, error) {
	var resp AuthorsResponse
	if err := c.get(ctx, "authors", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListInstitutions queries the institutions list endpoint.
func (c *Client) ListInstitutions(ctx context.Context, params url.Values) (*InstitutionsResponse, error) {
	var resp InstitutionsResponse
	if err := c.get(ctx, "institutions", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSources queries the sources list endpoint.
func (c *Client) ListSources(ctx context.Context, params url.Values) (*SourcesResponse, error) {
	var resp SourcesResponse
	if err := c.get(ctx, "sources", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetWork retrieves a single work by its normalized identifier.
// Returns a NotFoundError when the upstream has no such record.
func (c *Client) GetWork(ctx context.Context, id string) (*Work, error) {
	var work Work
	if err := c.getEntity(ctx, "works/"+id, "Work", id, &work); err != nil {
		return nil, err
	}
	if work.ID == "" {
		return nil, NewNotFoundError("Work", id)
	}
	return &work, nil
}

// GetAuthor retrieves a single author by its normalized identifier.
func (c *Client) GetAuthor(ctx context.Context, id string) (*Author, error) {
	var author Author
	if err := c.getEntity(ctx, "authors/"+id, "Author", id, &author); err != nil {
		return nil, err
	}
	if author.ID == "" {
		return nil, NewNotFoundError("Author", id)
	}
	return &author, nil
}

// GetInstitution retrieves a single institution by identifier.
func (c *Client) GetInstitution(ctx context.Context, id string) (*Institution, error) {
	var inst Institution
	if err := c.getEntity(ctx, "institutions/"+id, "Institution", id, &inst); err != nil {
		return nil, err
	}
	if inst.ID == "" {
		return nil, NewNotFoundError("Institution", id)
	}
	return &inst, nil
}

// GetSource retrieves a single source by identifier.
func (c *Client) GetSource(ctx context.Context, id string) (*Source, error) {
	var src Source
	if err := c.getEntity(ctx, "sources/"+id, "Source", id, &src); err != nil {
		return nil, err
	}
	if src.ID == "" {
		return nil, NewNotFoundError("Source", id)
	}
	return &src, nil
}

// getEntity fetches a single record, mapping an upstream 404 to NotFoundError.
func (c *Client) getEntity(ctx context.Context, endpoint, entity, id string, out any) error {
	err := c.get(ctx, endpoint, nil, out)
	var uerr *UpstreamError
	if errors.As(err, &uerr) && uerr.StatusCode == http.StatusNotFound {
		return NewNotFoundError(entity, id)
	}
	return err
}

// DownloadBytes fetches raw bytes from the given URL, holding the same
// admission gate as JSON requests. A non-PDF content type is logged as a
// warning but does not fail the download; callers decide what to do with
// the bytes. Returns the content and the response Content-Type.
func (c *Client) DownloadBytes(ctx context.Context, rawURL string) ([]byte, string, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return nil, "", err
	}
	defer release()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", &TransportError{Err: err}
	}

	if c.cfg.LogRequests {
		c.logger.Debug().Str("url", rawURL).Msg("downloading PDF")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", &TransportError{Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent())
	req.Header.Set("Accept", "application/pdf, */*;q=0.8")

	c.tracker.Record()
	resp, err := c.download.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamRequestsFailed.WithLabelValues("download", "transport").Inc()
		}
		return nil, "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.metrics != nil {
			c.metrics.UpstreamRequestsFailed.WithLabelValues("download", "upstream").Inc()
		}
		return nil, "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		c.logger.Warn().Str("content_type", contentType).Str("url", rawURL).
			Msg("downloaded content may not be PDF")
	}

	// Read one extra byte to detect oversized files.
	content, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, "", &TransportError{Err: err}
	}
	if int64(len(content)) > c.maxBytes {
		return nil, "", fmt.Errorf("%w: limit %d bytes", ErrTooLarge, c.maxBytes)
	}

	return content, contentType, nil
}
