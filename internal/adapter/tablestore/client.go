// Package tablestore reads zone indicator overrides from a PostgREST-style
// HTTP table (Supabase and similar hosted Postgres front-ends).
package tablestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
)

// Request outcomes recorded on TableStoreRequests.
const (
	outcomeFound   = "found"
	outcomeMissing = "missing"
	outcomeError   = "error"
)

// Client implements domain.BaselineStore against a REST table endpoint.
type Client struct {
	baseURL    string
	table      string
	apiKey     string
	httpClient *http.Client
	maxRetries uint64
	backoff    func() backoff.BackOff
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a table store client. timeout bounds each HTTP attempt.
func NewClient(baseURL, table, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		table:   table,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
		backoff:    defaultBackOff,
		metrics:    metrics,
		logger:     logger,
	}
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 10 * time.Second
	return bo
}

// FetchBaseline returns the numeric columns of the row matching zone,
// scenario and horizon. The present-day row is stored with horizon 0.
func (c *Client) FetchBaseline(ctx context.Context, zone string, scenario domain.ScenarioID, horizon domain.Horizon) (map[string]float64, bool, error) {
	params := url.Values{
		"zone":    {"eq." + zone},
		"horizon": {"eq." + strconv.Itoa(int(horizon))},
		"limit":   {"1"},
	}
	if horizon != domain.HorizonCurrent {
		params.Set("scenario", "eq."+string(scenario))
	}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(c.table), params.Encode())

	start := time.Now()
	var rows []map[string]any
	operation := func() error {
		var err error
		rows, err = c.doRequest(ctx, fullURL)
		return err
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("table store request failed, retrying",
			"zone", zone,
			"wait", wait,
			"error", err,
		)
	}
	err := backoff.RetryNotify(operation, bo, notify)
	c.metrics.TableStoreDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.TableStoreRequests.WithLabelValues(outcomeError).Inc()
		return nil, false, err
	}
	if len(rows) == 0 {
		c.metrics.TableStoreRequests.WithLabelValues(outcomeMissing).Inc()
		return nil, false, nil
	}
	c.metrics.TableStoreRequests.WithLabelValues(outcomeFound).Inc()
	return numericFields(rows[0]), true, nil
}

// doRequest performs one attempt. Network errors, 429 and 5xx are retried;
// any other non-200 status and malformed bodies are permanent.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("table store request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("table store API error: status %d: %s", resp.StatusCode, body)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return rows, nil
}

// numericFields keeps the row's numeric columns. Key columns (zone,
// scenario, horizon, id) are dropped; numbers sent as strings are parsed.
func numericFields(row map[string]any) map[string]float64 {
	out := make(map[string]float64, len(row))
	for k, v := range row {
		switch k {
		case "id", "zone", "scenario", "horizon":
			continue
		}
		switch n := v.(type) {
		case float64:
			out[k] = n
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				out[k] = f
			}
		}
	}
	return out
}
