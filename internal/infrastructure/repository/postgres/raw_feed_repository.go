package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/playerboard/internal/domain/rawfeed"
)

type RawFeedRepository struct {
	db *sqlx.DB
}

func NewRawFeedRepository(db *sqlx.DB) *RawFeedRepository {
	return &RawFeedRepository{db: db}
}

const upsertRawFeedPayloadQuery = `
INSERT INTO raw_feed_payloads (source, entity_type, season_key, body, body_hash, fetched_at)
VALUES (:source, :entity_type, :season_key, :body, :body_hash, :fetched_at)
ON CONFLICT (source, entity_type, season_key)
DO UPDATE SET
    body = EXCLUDED.body,
    body_hash = EXCLUDED.body_hash,
    fetched_at = EXCLUDED.fetched_at`

func (r *RawFeedRepository) UpsertMany(ctx context.Context, items []rawfeed.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw feed payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		model := rawFeedPayloadModel{
			Source:     item.Source,
			EntityType: item.EntityType,
			SeasonKey:  item.SeasonKey,
			Body:       item.Body,
			BodyHash:   item.BodyHash,
			FetchedAt:  item.FetchedAt,
		}
		if _, err := tx.NamedExecContext(ctx, upsertRawFeedPayloadQuery, model); err != nil {
			return fmt.Errorf("upsert raw feed payload source=%s entity=%s: %w", item.Source, item.EntityType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw feed payloads tx: %w", err)
	}

	return nil
}

func (r *RawFeedRepository) ListBySource(ctx context.Context, source string, limit int) ([]rawfeed.Payload, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []rawFeedPayloadModel
	query := `
SELECT source, entity_type, season_key, body, body_hash, fetched_at
FROM raw_feed_payloads
WHERE source = $1
ORDER BY fetched_at DESC
LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, source, limit); err != nil {
		return nil, fmt.Errorf("list raw feed payloads source=%s: %w", source, err)
	}

	out := make([]rawfeed.Payload, 0, len(rows))
	for _, row := range rows {
		out = append(out, rawfeed.Payload{
			Source:     row.Source,
			EntityType: row.EntityType,
			SeasonKey:  row.SeasonKey,
			Body:       row.Body,
			BodyHash:   row.BodyHash,
			FetchedAt:  row.FetchedAt,
		})
	}

	return out, nil
}

type rawFeedPayloadModel struct {
	Source     string    `db:"source"`
	EntityType string    `db:"entity_type"`
	SeasonKey  string    `db:"season_key"`
	Body       string    `db:"body"`
	BodyHash   string    `db:"body_hash"`
	FetchedAt  time.Time `db:"fetched_at"`
}
