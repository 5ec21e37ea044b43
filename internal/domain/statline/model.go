package statline

import "github.com/gridironhq/playerboard/internal/domain/roster"

// Line holds the sparse per-season stat categories for one player appearance.
// Every field is a pointer: absent means the feed carried no value for that
// category, which is not the same as zero. Only the categories relevant to a
// record's position group are populated.
type Line struct {
	Games        *int `json:"games,omitempty"`
	GamesStarted *int `json:"gamesStarted,omitempty"`

	PassingYards      *int `json:"passingYards,omitempty"`
	PassingAttempts   *int `json:"passingAttempts,omitempty"`
	PassingTouchdowns *int `json:"passingTouchdowns,omitempty"`

	RushingYards      *int `json:"rushingYards,omitempty"`
	RushingAttempts   *int `json:"rushingAttempts,omitempty"`
	RushingTouchdowns *int `json:"rushingTouchdowns,omitempty"`

	Receptions          *int `json:"receptions,omitempty"`
	Targets             *int `json:"targets,omitempty"`
	ReceivingYards      *int `json:"receivingYards,omitempty"`
	ReceivingTouchdowns *int `json:"receivingTouchdowns,omitempty"`

	FieldGoalsMade       *int     `json:"fieldGoalsMade,omitempty"`
	FieldGoalsAttempted  *int     `json:"fieldGoalsAttempted,omitempty"`
	FieldGoalsUnder30    *int     `json:"fieldGoalsUnder30,omitempty"`
	FieldGoals30to39     *int     `json:"fieldGoals30to39,omitempty"`
	FieldGoals40to49     *int     `json:"fieldGoals40to49,omitempty"`
	FieldGoals50Plus     *int     `json:"fieldGoals50Plus,omitempty"`
	ExtraPointsMade      *int     `json:"extraPointsMade,omitempty"`
	ExtraPointsAttempted *int     `json:"extraPointsAttempted,omitempty"`
	FieldGoalPercentage  *float64 `json:"fieldGoalPercentage,omitempty"`
	ExtraPointPercentage *float64 `json:"extraPointPercentage,omitempty"`

	PointsAllowed          *int `json:"pointsAllowed,omitempty"`
	Sacks                  *int `json:"sacks,omitempty"`
	Interceptions          *int `json:"interceptions,omitempty"`
	ForcedFumbles          *int `json:"forcedFumbles,omitempty"`
	FumbleRecoveries       *int `json:"fumbleRecoveries,omitempty"`
	Safeties               *int `json:"safeties,omitempty"`
	DefensiveTouchdowns    *int `json:"defensiveTouchdowns,omitempty"`
	SpecialTeamsTouchdowns *int `json:"specialTeamsTouchdowns,omitempty"`
	BlockedKicks           *int `json:"blockedKicks,omitempty"`
}

// StatRecord is one stat-feed row for a name/team pair in a season. RawName
// and RawTeam carry the feed's own spelling; the matcher normalizes on read.
type StatRecord struct {
	RawName     string
	RawTeam     string
	RawPosition roster.Position
	Season      string
	Age         string
	Line        Line
}

// Int returns a pointer to v, for building sparse lines.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// OrZero dereferences an optional category for scoring, where an absent
// category counts as zero.
func OrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
