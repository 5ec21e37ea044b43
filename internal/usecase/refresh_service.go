package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/gridironhq/playerboard/internal/platform/logging"
)

const (
	defaultWarmWorkers = 2
	maxWarmWorkers     = 8
	maxWarmSeasons     = 16

	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
)

// RefreshService pre-warms the board cache for a set of seasons so the first
// dashboard request after a deploy or an invalidation does not pay the full
// feed round trip.
type RefreshService struct {
	board  *BoardService
	logger *logging.Logger
}

func NewRefreshService(board *BoardService, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{board: board, logger: logger}
}

type WarmInput struct {
	Seasons    []string
	MaxWorkers int
	// Force drops each season's cached board before rebuilding it.
	Force bool
}

type WarmResult struct {
	SeasonCount  int              `json:"seasonCount"`
	WorkerCount  int              `json:"workerCount"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
	Seasons      []WarmSeasonItem `json:"seasons"`
}

type WarmSeasonItem struct {
	Season     string `json:"season"`
	Status     string `json:"status"`
	Players    int    `json:"players"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// WarmSeasons assembles each requested season's board through a bounded
// worker pool. Individual season failures are reported, not fatal.
func (s *RefreshService) WarmSeasons(ctx context.Context, input WarmInput) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.WarmSeasons")
	defer span.End()

	seasons, err := normalizeWarmSeasons(input.Seasons)
	if err != nil {
		return WarmResult{}, err
	}

	workerCount := normalizeWarmWorkerCount(input.MaxWorkers, len(seasons))
	result := WarmResult{
		SeasonCount: len(seasons),
		WorkerCount: workerCount,
		Seasons:     make([]WarmSeasonItem, 0, len(seasons)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmResult{}, errors.Wrap(err, "create warm worker pool")
	}
	defer pool.Release()

	rows := make(chan WarmSeasonItem, len(seasons))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, season := range seasons {
		season := season
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmSeasonItem{Season: season}

			if input.Force {
				s.board.Invalidate(ctx, season)
			}

			players, warmErr := s.board.Assemble(ctx, season)
			if warmErr != nil {
				row.Status = refreshStatusFailed
				row.Message = warmErr.Error()
				failedCount.Add(1)
			} else {
				row.Status = refreshStatusSuccess
				row.Players = len(players)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return WarmResult{}, errors.Wrap(err, "submit season to warm worker pool")
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].Season < result.Seasons[j].Season
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "warmed board cache",
		"seasons", result.SeasonCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func normalizeWarmSeasons(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, season := range raw {
		season = strings.TrimSpace(season)
		if season == "" || seen[season] {
			continue
		}
		seen[season] = true
		out = append(out, season)
	}
	if len(out) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "at least one season is required")
	}
	if len(out) > maxWarmSeasons {
		return nil, errors.Wrapf(ErrInvalidInput, "at most %d seasons per request", maxWarmSeasons)
	}
	return out, nil
}

func normalizeWarmWorkerCount(requested, taskCount int) int {
	count := requested
	if count < 1 {
		count = defaultWarmWorkers
	}
	if count > maxWarmWorkers {
		count = maxWarmWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	return count
}
