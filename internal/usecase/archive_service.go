package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gridironhq/playerboard/internal/domain/rawfeed"
)

const (
	defaultArchiveListLimit = 50
	maxArchiveListLimit     = 200
)

// ArchiveService exposes the stored provider payload snapshots for feed
// debugging: when a board looks wrong, the archived bodies show what the
// providers actually sent.
type ArchiveService struct {
	repo rawfeed.Repository
}

// NewArchiveService accepts a nil repository; archiving is optional and the
// service reports the archive as unavailable instead of failing wiring.
func NewArchiveService(repo rawfeed.Repository) *ArchiveService {
	return &ArchiveService{repo: repo}
}

// ListRecent returns the latest archived payloads for one feed source, newest
// first.
func (s *ArchiveService) ListRecent(ctx context.Context, source string, limit int) ([]rawfeed.Payload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.ListRecent")
	defer span.End()

	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return nil, errors.Wrap(ErrInvalidInput, "source is required")
	}
	if limit <= 0 {
		limit = defaultArchiveListLimit
	}
	if limit > maxArchiveListLimit {
		limit = maxArchiveListLimit
	}

	if s.repo == nil {
		return nil, errors.Wrap(ErrDependencyUnavailable, "feed archive is not configured")
	}

	payloads, err := s.repo.ListBySource(ctx, source, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list archived payloads for source %s: %v", ErrDependencyUnavailable, source, err)
	}

	return payloads, nil
}
