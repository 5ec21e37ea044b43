package pfr

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/statline"
	"github.com/gridironhq/playerboard/internal/domain/team"
)

// ParseFantasyPage extracts offensive and team-defense rows from the season
// fantasy table. Repeated header rows inside tbody are skipped; defense rows
// are renamed to the franchise full name so they match synthesized directory
// entries.
func ParseFantasyPage(body []byte, season string) ([]statline.StatRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	records := make([]statline.StatRecord, 0, 640)
	doc.Find("table#fantasy tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") || row.HasClass("over_header") || row.HasClass("norank") {
			return
		}

		name := cellLinkText(row, "player")
		rawTeam := cellText(row, "team")
		position := strings.ToUpper(cellText(row, "fantasy_pos"))
		if name == "" || rawTeam == "" || position == "" {
			return
		}

		record := statline.StatRecord{
			RawName: name,
			RawTeam: rawTeam,
			Season:  season,
			Age:     cellText(row, "age"),
			Line: statline.Line{
				Games:        cellInt(row, "g"),
				GamesStarted: cellInt(row, "gs"),
			},
		}

		if position == "DEF" {
			record.RawPosition = roster.PositionDefense
			if fullName := team.FullName(rawTeam); fullName != "" {
				record.RawName = fullName
			}
			record.Age = "0"
			record.Line.PointsAllowed = cellInt(row, "points_against")
			record.Line.Sacks = cellInt(row, "sacks")
			record.Line.Interceptions = cellInt(row, "def_int")
			record.Line.ForcedFumbles = cellInt(row, "fumbles_forced")
			record.Line.FumbleRecoveries = cellInt(row, "fumbles_rec")
			record.Line.Safeties = cellInt(row, "safety")
			record.Line.DefensiveTouchdowns = cellInt(row, "def_td")
			record.Line.SpecialTeamsTouchdowns = cellInt(row, "st_td")
			record.Line.BlockedKicks = cellInt(row, "blocked_kicks")
		} else {
			record.RawPosition = roster.Position(position)
			record.Line.PassingYards = cellInt(row, "pass_yds")
			record.Line.PassingAttempts = cellInt(row, "pass_att")
			record.Line.PassingTouchdowns = cellInt(row, "pass_td")
			record.Line.RushingYards = cellInt(row, "rush_yds")
			record.Line.RushingAttempts = cellInt(row, "rush_att")
			record.Line.RushingTouchdowns = cellInt(row, "rush_td")
			record.Line.Receptions = cellInt(row, "rec")
			record.Line.Targets = cellInt(row, "targets")
			record.Line.ReceivingYards = cellInt(row, "rec_yds")
			record.Line.ReceivingTouchdowns = cellInt(row, "rec_td")
		}

		records = append(records, record)
	})

	return records, nil
}

// ParseKickingPage extracts kicker rows from the season kicking table. The
// two shortest distance buckets collapse into the under-30 category.
func ParseKickingPage(body []byte, season string) ([]statline.StatRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	records := make([]statline.StatRecord, 0, 48)
	doc.Find("table#kicking tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") || row.HasClass("over_header") {
			return
		}

		name := cellLinkText(row, "player")
		rawTeam := cellText(row, "team")
		if name == "" || rawTeam == "" {
			return
		}

		fgm := cellIntValue(row, "fgm")
		fga := cellIntValue(row, "fga")
		xpm := cellIntValue(row, "xpm")
		xpa := cellIntValue(row, "xpa")
		under30 := cellIntValue(row, "fgm1") + cellIntValue(row, "fgm2")

		line := statline.Line{
			Games:                cellInt(row, "g"),
			GamesStarted:         cellInt(row, "gs"),
			FieldGoalsMade:       statline.Int(fgm),
			FieldGoalsAttempted:  statline.Int(fga),
			FieldGoalsUnder30:    statline.Int(under30),
			FieldGoals30to39:     cellInt(row, "fgm3"),
			FieldGoals40to49:     cellInt(row, "fgm4"),
			FieldGoals50Plus:     cellInt(row, "fgm5"),
			ExtraPointsMade:      statline.Int(xpm),
			ExtraPointsAttempted: statline.Int(xpa),
			FieldGoalPercentage:  statline.Float(percentage(fgm, fga)),
			ExtraPointPercentage: statline.Float(percentage(xpm, xpa)),
		}

		records = append(records, statline.StatRecord{
			RawName:     name,
			RawTeam:     rawTeam,
			RawPosition: roster.PositionKicker,
			Season:      season,
			Age:         cellText(row, "age"),
			Line:        line,
		})
	})

	return records, nil
}

func cellText(row *goquery.Selection, stat string) string {
	return strings.TrimSpace(row.Find(`td[data-stat="` + stat + `"]`).First().Text())
}

// cellLinkText reads the anchor inside a cell; player cells wrap the name in
// a link while summary rows do not.
func cellLinkText(row *goquery.Selection, stat string) string {
	return strings.TrimSpace(row.Find(`td[data-stat="` + stat + `"] a`).First().Text())
}

func cellInt(row *goquery.Selection, stat string) *int {
	return statline.Int(cellIntValue(row, stat))
}

// cellIntValue treats blank and malformed cells as zero; a single bad cell
// must never drop the row.
func cellIntValue(row *goquery.Selection, stat string) int {
	text := cellText(row, stat)
	if text == "" {
		return 0
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return value
}

func percentage(made, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	ratio := float64(made) / float64(attempted) * 100
	return float64(int(ratio*10+0.5)) / 10
}
