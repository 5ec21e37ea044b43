package roster

import (
	"regexp"
	"strings"

	"github.com/gridironhq/playerboard/internal/domain/team"
)

// Position represents fantasy-relevant NFL position codes.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "K"
	PositionDefense      Position = "DEF"

	// PositionUnknown is the placeholder for directory records that carry no
	// usable position code.
	PositionUnknown Position = "Unknown"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// DirectoryPlayer is one identity record from the player directory feed.
// RawTeam and RawPositions carry the provider's own vocabulary; canonical
// forms are derived, never stored back.
type DirectoryPlayer struct {
	ID           string
	FullName     string
	RawTeam      string
	RawPositions []Position
	IsActive     bool
	Age          int
	Status       string
	ESPNID       string
	YahooID      string
}

// PrimaryPosition is the first listed position, or Unknown when the feed
// provided none.
func (p DirectoryPlayer) PrimaryPosition() Position {
	if len(p.RawPositions) == 0 {
		return PositionUnknown
	}
	return p.RawPositions[0]
}

// IsDefense reports whether the record is a team-defense pseudo-player.
func (p DirectoryPlayer) IsDefense() bool {
	for _, pos := range p.RawPositions {
		if pos == PositionDefense {
			return true
		}
	}
	return false
}

// HasFantasyPosition reports whether any listed position is in the allowed
// fantasy set.
func (p DirectoryPlayer) HasFantasyPosition() bool {
	for _, pos := range p.RawPositions {
		if _, ok := AllPositions[pos]; ok {
			return true
		}
	}
	return false
}

var nameSuffixRegex = regexp.MustCompile(`\s+(jr|sr|ii|iii)$`)
var whitespaceRunRegex = regexp.MustCompile(`\s+`)

// NormalizeName folds a display name into the comparable form used for
// cross-feed matching: lowercase, periods stripped, trailing generational
// suffixes removed, whitespace runs collapsed. This is deliberately coarse;
// transposed names, nicknames and diacritics stay distinct.
func NormalizeName(name string) string {
	out := strings.ToLower(strings.TrimSpace(name))
	if out == "" {
		return ""
	}
	out = strings.ReplaceAll(out, ".", "")
	out = nameSuffixRegex.ReplaceAllString(out, "")
	out = whitespaceRunRegex.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// SynthesizeDefenses builds one team-defense DirectoryPlayer per franchise.
// Directory feeds churn individual rosters but a franchise defense is a
// standing entity, so synthesized entries are always active.
func SynthesizeDefenses() []DirectoryPlayer {
	out := make([]DirectoryPlayer, 0, len(team.AllCodes))
	for _, code := range team.AllCodes {
		out = append(out, DirectoryPlayer{
			ID:           code + "_DEF",
			FullName:     team.FullNames[code],
			RawTeam:      code,
			RawPositions: []Position{PositionDefense},
			IsActive:     true,
			Status:       "Active",
		})
	}
	return out
}
