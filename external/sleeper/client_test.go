package sleeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/platform/logging"
	"github.com/gridironhq/playerboard/internal/platform/resilience"
	"github.com/gridironhq/playerboard/internal/usecase"
)

const directoryFixture = `{
  "4034": {
    "player_id": "4034",
    "full_name": "Jane Doe",
    "fantasy_positions": ["WR"],
    "team": "SF",
    "age": 26,
    "status": "Active",
    "active": true,
    "espn_id": 3045144,
    "yahoo_id": "30123"
  },
  "SF": {
    "player_id": "SF",
    "first_name": "San Francisco",
    "last_name": "49ers",
    "fantasy_positions": ["DEF"],
    "team": "SF",
    "active": true
  },
  "9999": {
    "player_id": "9999",
    "fantasy_positions": ["QB"],
    "team": "DAL",
    "active": true
  }
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Timeout:    5 * time.Second,
		Logger:     logging.NewNop(),
	})
}

func TestListPlayers_MapsDirectoryEntries(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/players/nfl", r.URL.Path)
		_, _ = w.Write([]byte(directoryFixture))
	}))

	players, err := client.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2, "nameless entries must be dropped")

	byID := map[string]roster.DirectoryPlayer{}
	for _, p := range players {
		byID[p.ID] = p
	}

	jane := byID["4034"]
	require.Equal(t, "Jane Doe", jane.FullName)
	require.Equal(t, "SF", jane.RawTeam)
	require.Equal(t, []roster.Position{roster.PositionWideReceiver}, jane.RawPositions)
	require.True(t, jane.IsActive)
	require.Equal(t, 26, jane.Age)
	require.Equal(t, "3045144", jane.ESPNID, "numeric ids decode to strings")
	require.Equal(t, "30123", jane.YahooID)

	def := byID["SF"]
	require.Equal(t, "San Francisco 49ers", def.FullName, "first/last fallback when full_name is absent")
	require.True(t, def.IsDefense())
}

func TestListPlayers_DeterministicOrder(t *testing.T) {
	// Two entries sharing a display name; the decoded map must not leak its
	// randomized iteration order into the directory listing.
	const fixture = `{
	  "77": {"player_id": "77", "full_name": "Mike Williams", "fantasy_positions": ["WR"], "team": "LAC", "active": true},
	  "12": {"player_id": "12", "full_name": "Mike Williams", "fantasy_positions": ["WR"], "team": "SD", "active": true}
	}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))

	var first []string
	for range 5 {
		players, err := client.ListPlayers(context.Background())
		require.NoError(t, err)

		ids := make([]string, 0, len(players))
		for _, p := range players {
			ids = append(ids, p.ID)
		}
		if first == nil {
			first = ids
			require.Equal(t, []string{"12", "77"}, first, "entries must come out in key order")
			continue
		}
		require.Equal(t, first, ids)
	}
}

func TestListPlayers_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(directoryFixture))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	players, err := client.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	require.Equal(t, int32(2), hits.Load())
}

func TestListPlayers_OpenCircuitShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	_, err := client.ListPlayers(context.Background())
	require.Error(t, err)

	_, err = client.ListPlayers(context.Background())
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestListPlayers_MalformedPayloadFails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))

	_, err := client.ListPlayers(context.Background())
	require.Error(t, err)
}
