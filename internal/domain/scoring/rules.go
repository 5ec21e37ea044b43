package scoring

import (
	"math"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/statline"
)

// Rates stores the per-unit fantasy point values for every stat category.
// PPR variant: one point per reception.
type Rates struct {
	PassingYards           float64
	PassingTouchdowns      float64
	PassingInterceptions   float64
	RushingYards           float64
	RushingTouchdowns      float64
	Receptions             float64
	ReceivingYards         float64
	ReceivingTouchdowns    float64
	FieldGoalsMadeUnder50  float64
	FieldGoalsMade50Plus   float64
	FieldGoalsMissed       float64
	ExtraPoints            float64
	Sacks                  float64
	Interceptions          float64
	FumbleRecoveries       float64
	Safeties               float64
	DefensiveTouchdowns    float64
	SpecialTeamsTouchdowns float64
	PointsAllowed0         float64
	PointsAllowed1to6      float64
	PointsAllowed7to13     float64
	PointsAllowed14to20    float64
	PointsAllowed21to27    float64
	PointsAllowed28to34    float64
	PointsAllowed35Plus    float64
}

// DefaultRates returns the standard PPR scoring table.
//
// PassingInterceptions and FieldGoalsMissed are declared for completeness but
// Score does not apply them; the shipped scoring has never charged those
// penalties and wiring them changes every QB and K total.
func DefaultRates() Rates {
	return Rates{
		PassingYards:         0.04, // 1 point per 25 yards
		PassingTouchdowns:    4,
		PassingInterceptions: -2,

		RushingYards:      0.1, // 1 point per 10 yards
		RushingTouchdowns: 6,

		Receptions:          1, // PPR
		ReceivingYards:      0.1,
		ReceivingTouchdowns: 6,

		FieldGoalsMadeUnder50: 3,
		FieldGoalsMade50Plus:  5,
		FieldGoalsMissed:      -1,
		ExtraPoints:           1,

		Sacks:                  1,
		Interceptions:          2,
		FumbleRecoveries:       2,
		Safeties:               2,
		DefensiveTouchdowns:    6,
		SpecialTeamsTouchdowns: 6,
		PointsAllowed0:         10,
		PointsAllowed1to6:      7,
		PointsAllowed7to13:     4,
		PointsAllowed14to20:    1,
		PointsAllowed21to27:    0,
		PointsAllowed28to34:    -1,
		PointsAllowed35Plus:    -4,
	}
}

// Score computes the fantasy point total for one position's stat line with
// the given rates. Absent categories count as zero. Each position reads only
// its own category group: QB passing+rushing, RB/WR/TE receiving+rushing,
// K bucketed field goals + extra points, DEF defensive categories plus the
// points-allowed bracket. Any other position scores zero. The result is
// rounded half away from zero to one decimal place.
func Score(position roster.Position, line statline.Line, rates Rates) float64 {
	var points float64

	switch position {
	case roster.PositionQuarterback:
		points += float64(statline.OrZero(line.PassingYards)) * rates.PassingYards
		points += float64(statline.OrZero(line.PassingTouchdowns)) * rates.PassingTouchdowns
		points += float64(statline.OrZero(line.RushingYards)) * rates.RushingYards
		points += float64(statline.OrZero(line.RushingTouchdowns)) * rates.RushingTouchdowns

	case roster.PositionRunningBack, roster.PositionWideReceiver, roster.PositionTightEnd:
		points += float64(statline.OrZero(line.Receptions)) * rates.Receptions
		points += float64(statline.OrZero(line.ReceivingYards)) * rates.ReceivingYards
		points += float64(statline.OrZero(line.ReceivingTouchdowns)) * rates.ReceivingTouchdowns
		points += float64(statline.OrZero(line.RushingYards)) * rates.RushingYards
		points += float64(statline.OrZero(line.RushingTouchdowns)) * rates.RushingTouchdowns

	case roster.PositionKicker:
		// All makes under 50 yards score the same regardless of bucket.
		points += float64(statline.OrZero(line.FieldGoalsUnder30)) * rates.FieldGoalsMadeUnder50
		points += float64(statline.OrZero(line.FieldGoals30to39)) * rates.FieldGoalsMadeUnder50
		points += float64(statline.OrZero(line.FieldGoals40to49)) * rates.FieldGoalsMadeUnder50
		points += float64(statline.OrZero(line.FieldGoals50Plus)) * rates.FieldGoalsMade50Plus
		points += float64(statline.OrZero(line.ExtraPointsMade)) * rates.ExtraPoints

	case roster.PositionDefense:
		points += float64(statline.OrZero(line.Sacks)) * rates.Sacks
		points += float64(statline.OrZero(line.Interceptions)) * rates.Interceptions
		points += float64(statline.OrZero(line.FumbleRecoveries)) * rates.FumbleRecoveries
		points += float64(statline.OrZero(line.Safeties)) * rates.Safeties
		points += float64(statline.OrZero(line.DefensiveTouchdowns)) * rates.DefensiveTouchdowns
		points += float64(statline.OrZero(line.SpecialTeamsTouchdowns)) * rates.SpecialTeamsTouchdowns
		points += pointsAllowedBracket(statline.OrZero(line.PointsAllowed), rates)
	}

	return roundToTenth(points)
}

func pointsAllowedBracket(allowed int, rates Rates) float64 {
	switch {
	case allowed == 0:
		return rates.PointsAllowed0
	case allowed <= 6:
		return rates.PointsAllowed1to6
	case allowed <= 13:
		return rates.PointsAllowed7to13
	case allowed <= 20:
		return rates.PointsAllowed14to20
	case allowed <= 27:
		return rates.PointsAllowed21to27
	case allowed <= 34:
		return rates.PointsAllowed28to34
	default:
		return rates.PointsAllowed35Plus
	}
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
