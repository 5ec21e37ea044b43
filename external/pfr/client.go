// Package pfr scrapes season fantasy and kicking tables from
// Pro-Football-Reference and parses them into stat records.
package pfr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gridironhq/playerboard/internal/domain/rawfeed"
	"github.com/gridironhq/playerboard/internal/domain/statline"
	"github.com/gridironhq/playerboard/internal/platform/logging"
	"github.com/gridironhq/playerboard/internal/platform/resilience"
	"github.com/gridironhq/playerboard/internal/usecase"
)

const (
	defaultBaseURL    = "https://www.pro-football-reference.com"
	defaultTimeout    = 30 * time.Second
	maxResponseSize   = 8 << 20
	defaultUserAgent  = "playerboard/1.0 (+https://github.com/gridironhq/playerboard)"
	archiveSourceName = "pfr"
)

var errPFRTransient = crerr.New("pfr transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Archive        rawfeed.Repository
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	archive        rawfeed.Repository
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		archive:        cfg.Archive,
	}
}

// SeasonStats fetches and parses both season tables. Offensive and defense
// rows come from the fantasy page, kicker rows from the kicking page; the two
// pages are fetched concurrently.
func (c *Client) SeasonStats(ctx context.Context, season string) ([]statline.StatRecord, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		return nil, crerr.New("season is required")
	}

	var fantasyBody, kickingBody []byte

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		body, err := c.fetchPage(ctx, "/years/"+season+"/fantasy.htm")
		if err != nil {
			return crerr.Wrapf(err, "fetch season %s fantasy page", season)
		}
		fantasyBody = body
		return nil
	})
	p.Go(func(ctx context.Context) error {
		body, err := c.fetchPage(ctx, "/years/"+season+"/kicking.htm")
		if err != nil {
			return crerr.Wrapf(err, "fetch season %s kicking page", season)
		}
		kickingBody = body
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	records, err := ParseFantasyPage(fantasyBody, season)
	if err != nil {
		return nil, crerr.Wrap(err, "parse fantasy page")
	}
	kickers, err := ParseKickingPage(kickingBody, season)
	if err != nil {
		return nil, crerr.Wrap(err, "parse kicking page")
	}
	records = append(records, kickers...)

	c.archivePayload(ctx, "fantasy", season, fantasyBody)
	c.archivePayload(ctx, "kicking", season, kickingBody)

	c.logger.InfoContext(ctx, "fetched pfr season stats",
		"season", season,
		"records", len(records),
	)
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "pfr circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stat feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errPFRTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("accept", "text/html")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrap(errPFRTransient, err.Error())
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errPFRTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errPFRTransient, "provider status=%d", resp.StatusCode)
			default:
				return nil, crerr.Newf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "pfr request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody drains the response through a pooled buffer; season pages run a
// few megabytes each and the pool keeps scrapes from churning allocations.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, maxResponseSize)); err != nil {
		return nil, err
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func (c *Client) archivePayload(ctx context.Context, entityType, season string, body []byte) {
	if c.archive == nil {
		return
	}

	sum := sha256.Sum256(body)
	err := c.archive.UpsertMany(ctx, []rawfeed.Payload{{
		Source:     archiveSourceName,
		EntityType: entityType,
		SeasonKey:  season,
		Body:       string(body),
		BodyHash:   hex.EncodeToString(sum[:]),
		FetchedAt:  time.Now().UTC(),
	}})
	if err != nil {
		c.logger.WarnContext(ctx, "archive pfr payload failed", "entity_type", entityType, "season", season, "error", err)
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
