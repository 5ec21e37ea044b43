// Package rawfeed archives the raw upstream payloads behind the player board
// so feed regressions can be replayed without re-scraping providers.
package rawfeed

import (
	"context"
	"time"
)

type Payload struct {
	Source     string
	EntityType string
	SeasonKey  string
	Body       string
	BodyHash   string
	FetchedAt  time.Time
}

// Repository persists provider payload snapshots. Implementations must be
// safe for concurrent use; archiving is best-effort and never blocks the
// board pipeline.
type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
	ListBySource(ctx context.Context, source string, limit int) ([]Payload, error)
}
