package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridironhq/playerboard/internal/domain/rawfeed"
)

type stubArchiveRepo struct {
	payloads  []rawfeed.Payload
	err       error
	lastLimit int
}

func (s *stubArchiveRepo) UpsertMany(context.Context, []rawfeed.Payload) error { return s.err }

func (s *stubArchiveRepo) ListBySource(_ context.Context, source string, limit int) ([]rawfeed.Payload, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	out := make([]rawfeed.Payload, 0, len(s.payloads))
	for _, p := range s.payloads {
		if p.Source == source {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestArchiveListRecent_FiltersBySource(t *testing.T) {
	repo := &stubArchiveRepo{payloads: []rawfeed.Payload{
		{Source: "sleeper", EntityType: "players", BodyHash: "aaa", FetchedAt: time.Now()},
		{Source: "pfr", EntityType: "fantasy", SeasonKey: "2024", BodyHash: "bbb", FetchedAt: time.Now()},
	}}

	payloads, err := NewArchiveService(repo).ListRecent(context.Background(), " Sleeper ", 0)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(payloads) != 1 || payloads[0].BodyHash != "aaa" {
		t.Fatalf("unexpected payloads: %+v", payloads)
	}
	if repo.lastLimit != 50 {
		t.Fatalf("default limit = %d, want 50", repo.lastLimit)
	}
}

func TestArchiveListRecent_ClampsLimit(t *testing.T) {
	repo := &stubArchiveRepo{}
	if _, err := NewArchiveService(repo).ListRecent(context.Background(), "pfr", 10_000); err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if repo.lastLimit != 200 {
		t.Fatalf("clamped limit = %d, want 200", repo.lastLimit)
	}
}

func TestArchiveListRecent_EmptySourceIsInvalidInput(t *testing.T) {
	_, err := NewArchiveService(&stubArchiveRepo{}).ListRecent(context.Background(), "  ", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestArchiveListRecent_NilRepositoryIsUnavailable(t *testing.T) {
	_, err := NewArchiveService(nil).ListRecent(context.Background(), "pfr", 0)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestArchiveListRecent_RepositoryFailureIsUnavailable(t *testing.T) {
	repo := &stubArchiveRepo{err: errors.New("connection refused")}
	_, err := NewArchiveService(repo).ListRecent(context.Background(), "pfr", 0)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
