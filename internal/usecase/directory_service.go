package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/gridironhq/playerboard/internal/domain/roster"
)

// DirectoryService exposes the raw identity feed for inspection, independent
// of the assembled board.
type DirectoryService struct {
	directory DirectoryProvider
}

func NewDirectoryService(directory DirectoryProvider) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// ListActive returns the active fantasy-position players from the directory
// feed, sorted ascending by name.
func (s *DirectoryService) ListActive(ctx context.Context) ([]roster.DirectoryPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.ListActive")
	defer span.End()

	players, err := s.directory.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch player directory: %v", ErrDependencyUnavailable, err)
	}

	out := make([]roster.DirectoryPlayer, 0, len(players))
	for _, p := range players {
		if p.IsActive && p.HasFantasyPosition() {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FullName < out[j].FullName
	})

	return out, nil
}
