package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/platform/cache"
	"github.com/gridironhq/playerboard/internal/platform/logging"
)

func TestWarmSeasons_WarmsEachSeasonOnce(t *testing.T) {
	directory := &stubDirectory{players: []roster.DirectoryPlayer{
		{ID: "1", FullName: "Jane Doe", RawTeam: "SF", RawPositions: []roster.Position{roster.PositionWideReceiver}, IsActive: true},
	}}
	stats := &stubStats{}
	board := newTestBoardService(directory, stats)
	svc := NewRefreshService(board, logging.NewNop())

	result, err := svc.WarmSeasons(context.Background(), WarmInput{
		Seasons: []string{"2023", "2024", "2024", " "},
	})
	if err != nil {
		t.Fatalf("WarmSeasons error: %v", err)
	}

	if result.SeasonCount != 2 {
		t.Fatalf("seasonCount = %d, want duplicates and blanks dropped", result.SeasonCount)
	}
	if result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("success/failed = %d/%d, want 2/0", result.SuccessCount, result.FailedCount)
	}
	if got := stats.calls.Load(); got != 2 {
		t.Fatalf("stat feed fetched %d times, want once per season", got)
	}

	// The cache is warm now; a board request must not refetch.
	before := directory.calls.Load()
	if _, err := board.Assemble(context.Background(), "2024"); err != nil {
		t.Fatalf("Assemble after warm error: %v", err)
	}
	if got := directory.calls.Load(); got != before {
		t.Fatal("warmed season should be served from cache")
	}
}

func TestWarmSeasons_ReportsPerSeasonFailures(t *testing.T) {
	stats := &stubStats{err: errors.New("provider down")}
	board := NewBoardService(&stubDirectory{}, stats, cache.NewStore(time.Minute), logging.NewNop())
	svc := NewRefreshService(board, logging.NewNop())

	result, err := svc.WarmSeasons(context.Background(), WarmInput{Seasons: []string{"2024"}})
	if err != nil {
		t.Fatalf("WarmSeasons error: %v", err)
	}

	if result.FailedCount != 1 || result.SuccessCount != 0 {
		t.Fatalf("success/failed = %d/%d, want 0/1", result.SuccessCount, result.FailedCount)
	}
	if result.Seasons[0].Status != refreshStatusFailed || result.Seasons[0].Message == "" {
		t.Fatalf("season row = %+v, want failed with message", result.Seasons[0])
	}
}

func TestWarmSeasons_RejectsEmptyInput(t *testing.T) {
	svc := NewRefreshService(newTestBoardService(&stubDirectory{}, &stubStats{}), logging.NewNop())

	_, err := svc.WarmSeasons(context.Background(), WarmInput{Seasons: []string{" ", ""}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestNormalizeWarmWorkerCount(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		tasks     int
		want      int
	}{
		{"default when unset", 0, 10, defaultWarmWorkers},
		{"capped at max", 50, 50, maxWarmWorkers},
		{"never more workers than tasks", 4, 1, 1},
		{"requested within bounds", 3, 10, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeWarmWorkerCount(tc.requested, tc.tasks); got != tc.want {
				t.Fatalf("normalizeWarmWorkerCount(%d, %d) = %d, want %d", tc.requested, tc.tasks, got, tc.want)
			}
		})
	}
}
