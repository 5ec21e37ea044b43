// Package board defines the unified player record served to the dashboard:
// one entry per directory player, stat categories merged in from the stat
// feed when a match was found, and a computed fantasy point total.
package board

import (
	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/statline"
)

// Player is one assembled board entry. Identity fields always come from the
// directory feed; the embedded stat line keeps absent categories absent so a
// missing match is distinguishable from an all-zero season.
type Player struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Team     string          `json:"team"`
	Position roster.Position `json:"position"`
	Age      string          `json:"age,omitempty"`
	Status   string          `json:"status,omitempty"`
	Active   bool            `json:"active"`
	ByeWeek  int             `json:"byeWeek,omitempty"`
	Season   string          `json:"season,omitempty"`

	ESPNAvatar    string `json:"espnAvatar,omitempty"`
	SleeperAvatar string `json:"sleeperAvatar,omitempty"`
	YahooAvatar   string `json:"yahooAvatar,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`

	statline.Line

	// Matched reports whether a stat-feed record was merged into this entry.
	Matched bool `json:"matched"`

	// FantasyPoints is always present; zero when no stat record matched.
	FantasyPoints float64 `json:"fantasyPoints"`
}
