package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gridironhq/playerboard/internal/domain/statline"
)

// StatService exposes the raw parsed stat feed for inspection.
type StatService struct {
	stats StatProvider
}

func NewStatService(stats StatProvider) *StatService {
	return &StatService{stats: stats}
}

// ListSeason returns every parsed stat record for one season, sorted
// ascending by raw name.
func (s *StatService) ListSeason(ctx context.Context, season string) ([]statline.StatRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.ListSeason")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return nil, errors.Wrap(ErrInvalidInput, "season is required")
	}

	records, err := s.stats.SeasonStats(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch season %s stats: %v", ErrDependencyUnavailable, season, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RawName < records[j].RawName
	})

	return records, nil
}
