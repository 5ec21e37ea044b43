package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/team"
)

// MatchReport is the reconciliation diagnostic for one season: how many
// directory players found a stat line and which records on either side were
// left unpaired.
type MatchReport struct {
	Season           string      `json:"season"`
	DirectoryPlayers int         `json:"directoryPlayers"`
	StatRecords      int         `json:"statRecords"`
	Matched          int         `json:"matched"`
	UnmatchedPlayers []MatchMiss `json:"unmatchedPlayers"`
	UnusedStatLines  []MatchMiss `json:"unusedStatLines"`
}

// MatchMiss identifies one unpaired record on either side of the join.
type MatchMiss struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
	RawTeam        string `json:"rawTeam"`
	Team           string `json:"team"`
	Position       string `json:"position"`
}

// MatchReport rebuilds the join for one season from fresh feeds and reports
// every pairing miss. Diagnostics bypass the board cache on purpose.
func (s *BoardService) MatchReport(ctx context.Context, season string) (MatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.MatchReport")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return MatchReport{}, errors.Wrap(ErrInvalidInput, "season is required")
	}

	directory, stats, err := s.fetchFeeds(ctx, season)
	if err != nil {
		return MatchReport{}, err
	}
	directory = ensureDefenses(directory)

	report := MatchReport{
		Season:           season,
		StatRecords:      len(stats),
		UnmatchedPlayers: []MatchMiss{},
		UnusedStatLines:  []MatchMiss{},
	}

	used := make(map[int]bool, len(stats))
	for _, p := range directory {
		if !includePlayer(p) {
			continue
		}
		report.DirectoryPlayers++

		idx, matched := matchStatIndex(p, stats)
		if matched {
			report.Matched++
			used[idx] = true
			continue
		}
		report.UnmatchedPlayers = append(report.UnmatchedPlayers, MatchMiss{
			ID:             p.ID,
			Name:           p.FullName,
			NormalizedName: roster.NormalizeName(p.FullName),
			RawTeam:        p.RawTeam,
			Team:           team.Canonicalize(p.RawTeam),
			Position:       string(p.PrimaryPosition()),
		})
	}

	for i, record := range stats {
		if used[i] {
			continue
		}
		report.UnusedStatLines = append(report.UnusedStatLines, MatchMiss{
			Name:           record.RawName,
			NormalizedName: roster.NormalizeName(record.RawName),
			RawTeam:        record.RawTeam,
			Team:           team.Canonicalize(record.RawTeam),
			Position:       string(record.RawPosition),
		})
	}

	return report, nil
}
