// Package sleeper fetches the NFL player directory from the Sleeper public
// API and maps it into directory records.
package sleeper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gridironhq/playerboard/internal/domain/rawfeed"
	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/platform/logging"
	"github.com/gridironhq/playerboard/internal/platform/resilience"
	"github.com/gridironhq/playerboard/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.sleeper.app"
	playersPath       = "/v1/players/nfl"
	maxResponseSize   = 64 << 20 // the full directory payload is ~10MB and growing
	defaultTimeout    = 30 * time.Second
	archiveSourceName = "sleeper"
)

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Archive, when set, receives a best-effort snapshot of every fetched
	// payload.
	Archive rawfeed.Repository
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
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
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		archive:        cfg.Archive,
	}
}

// sleeperPlayer mirrors the wire shape of one directory entry. Numeric IDs
// arrive as numbers or strings depending on the record's age, so they decode
// through json.Number.
type sleeperPlayer struct {
	PlayerID         string      `json:"player_id"`
	FullName         string      `json:"full_name"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	FantasyPositions []string    `json:"fantasy_positions"`
	Team             string      `json:"team"`
	Age              int         `json:"age"`
	Status           string      `json:"status"`
	Active           bool        `json:"active"`
	ESPNID           json.Number `json:"espn_id"`
	YahooID          json.Number `json:"yahoo_id"`
}

// ListPlayers fetches the full directory and maps every entry that carries a
// usable name. Team-defense entries come through the same endpoint keyed by
// franchise code.
func (c *Client) ListPlayers(ctx context.Context) ([]roster.DirectoryPlayer, error) {
	raw, err := c.fetch(ctx, playersPath)
	if err != nil {
		return nil, err
	}

	var payload map[string]sleeperPlayer
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode sleeper directory payload")
	}

	c.archivePayload(ctx, "players", raw)

	// Map iteration order is randomized per run; emit entries in key order so
	// the directory feed is deterministic across restarts.
	ids := make([]string, 0, len(payload))
	for id := range payload {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]roster.DirectoryPlayer, 0, len(payload))
	for _, id := range ids {
		mapped, ok := mapDirectoryPlayer(id, payload[id])
		if !ok {
			continue
		}
		out = append(out, mapped)
	}

	c.logger.InfoContext(ctx, "fetched sleeper directory",
		"entries", len(payload),
		"mapped", len(out),
	)
	return out, nil
}

func mapDirectoryPlayer(id string, p sleeperPlayer) (roster.DirectoryPlayer, bool) {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	}
	if name == "" {
		return roster.DirectoryPlayer{}, false
	}

	playerID := strings.TrimSpace(p.PlayerID)
	if playerID == "" {
		playerID = strings.TrimSpace(id)
	}
	if playerID == "" {
		return roster.DirectoryPlayer{}, false
	}

	positions := make([]roster.Position, 0, len(p.FantasyPositions))
	for _, raw := range p.FantasyPositions {
		raw = strings.ToUpper(strings.TrimSpace(raw))
		if raw == "" {
			continue
		}
		positions = append(positions, roster.Position(raw))
	}

	return roster.DirectoryPlayer{
		ID:           playerID,
		FullName:     name,
		RawTeam:      strings.TrimSpace(p.Team),
		RawPositions: positions,
		IsActive:     p.Active,
		Age:          p.Age,
		Status:       p.Status,
		ESPNID:       p.ESPNID.String(),
		YahooID:      p.YahooID.String(),
	}, true
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: player directory is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSleeperTransient) {
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
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrap(errSleeperTransient, err.Error())
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errSleeperTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errSleeperTransient, "provider status=%d", resp.StatusCode)
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
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) archivePayload(ctx context.Context, entityType string, body []byte) {
	if c.archive == nil {
		return
	}

	sum := sha256.Sum256(body)
	err := c.archive.UpsertMany(ctx, []rawfeed.Payload{{
		Source:     archiveSourceName,
		EntityType: entityType,
		Body:       string(body),
		BodyHash:   hex.EncodeToString(sum[:]),
		FetchedAt:  time.Now().UTC(),
	}})
	if err != nil {
		c.logger.WarnContext(ctx, "archive sleeper payload failed", "entity_type", entityType, "error", err)
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
