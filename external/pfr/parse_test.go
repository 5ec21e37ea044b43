package pfr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/statline"
)

const fantasyPageFixture = `
<html><body>
<table id="fantasy">
<tbody>
<tr class="thead"><td data-stat="player">Player</td></tr>
<tr>
  <td data-stat="player"><a href="/players/D/DoeJa00.htm">Jane Doe</a></td>
  <td data-stat="team">SFO</td>
  <td data-stat="fantasy_pos">WR</td>
  <td data-stat="age">26</td>
  <td data-stat="g">17</td>
  <td data-stat="gs">16</td>
  <td data-stat="rec">90</td>
  <td data-stat="targets">120</td>
  <td data-stat="rec_yds">1200</td>
  <td data-stat="rec_td">8</td>
  <td data-stat="rush_yds">45</td>
  <td data-stat="rush_att">9</td>
  <td data-stat="rush_td">1</td>
  <td data-stat="pass_yds"></td>
  <td data-stat="pass_att"></td>
  <td data-stat="pass_td"></td>
</tr>
<tr class="over_header"><td data-stat="player">Repeat header</td></tr>
<tr>
  <td data-stat="player"><a href="/teams/chi/2024.htm">Bears</a></td>
  <td data-stat="team">CHI</td>
  <td data-stat="fantasy_pos">Def</td>
  <td data-stat="age"></td>
  <td data-stat="g">17</td>
  <td data-stat="gs">17</td>
  <td data-stat="points_against">289</td>
  <td data-stat="sacks">40</td>
  <td data-stat="def_int">16</td>
  <td data-stat="fumbles_forced">12</td>
  <td data-stat="fumbles_rec">9</td>
  <td data-stat="safety">1</td>
  <td data-stat="def_td">3</td>
  <td data-stat="st_td">1</td>
  <td data-stat="blocked_kicks">2</td>
</tr>
<tr>
  <td data-stat="player"></td>
  <td data-stat="team">DAL</td>
  <td data-stat="fantasy_pos">RB</td>
</tr>
</tbody>
</table>
</body></html>`

const kickingPageFixture = `
<html><body>
<table id="kicking">
<tbody>
<tr class="thead"><td data-stat="player">Player</td></tr>
<tr>
  <td data-stat="player"><a href="/players/K/KickJo00.htm">John Kicker</a></td>
  <td data-stat="team">BUF</td>
  <td data-stat="age">29</td>
  <td data-stat="g">17</td>
  <td data-stat="gs">0</td>
  <td data-stat="fgm">30</td>
  <td data-stat="fga">34</td>
  <td data-stat="xpm">45</td>
  <td data-stat="xpa">46</td>
  <td data-stat="fgm1">3</td>
  <td data-stat="fgm2">8</td>
  <td data-stat="fgm3">10</td>
  <td data-stat="fgm4">5</td>
  <td data-stat="fgm5">4</td>
</tr>
</tbody>
</table>
</body></html>`

func TestParseFantasyPage(t *testing.T) {
	records, err := ParseFantasyPage([]byte(fantasyPageFixture), "2024")
	require.NoError(t, err)
	require.Len(t, records, 2, "header and nameless rows must be skipped")

	wr := records[0]
	require.Equal(t, "Jane Doe", wr.RawName)
	require.Equal(t, "SFO", wr.RawTeam)
	require.Equal(t, roster.PositionWideReceiver, wr.RawPosition)
	require.Equal(t, "2024", wr.Season)
	require.Equal(t, "26", wr.Age)
	require.Equal(t, 90, statline.OrZero(wr.Line.Receptions))
	require.Equal(t, 1200, statline.OrZero(wr.Line.ReceivingYards))
	require.Equal(t, 45, statline.OrZero(wr.Line.RushingYards))
	require.Equal(t, 0, statline.OrZero(wr.Line.PassingYards), "blank cells parse as zero")
	require.Nil(t, wr.Line.Sacks, "offensive rows must not carry defensive categories")

	def := records[1]
	require.Equal(t, roster.PositionDefense, def.RawPosition)
	require.Equal(t, "Chicago Bears", def.RawName, "defense rows are renamed to the franchise full name")
	require.Equal(t, "CHI", def.RawTeam)
	require.Equal(t, "0", def.Age)
	require.Equal(t, 289, statline.OrZero(def.Line.PointsAllowed))
	require.Equal(t, 40, statline.OrZero(def.Line.Sacks))
	require.Equal(t, 16, statline.OrZero(def.Line.Interceptions))
	require.Nil(t, def.Line.Receptions, "defense rows must not carry offensive categories")
}

func TestParseKickingPage(t *testing.T) {
	records, err := ParseKickingPage([]byte(kickingPageFixture), "2024")
	require.NoError(t, err)
	require.Len(t, records, 1)

	k := records[0]
	require.Equal(t, "John Kicker", k.RawName)
	require.Equal(t, roster.PositionKicker, k.RawPosition)
	require.Equal(t, 30, statline.OrZero(k.Line.FieldGoalsMade))
	require.Equal(t, 11, statline.OrZero(k.Line.FieldGoalsUnder30), "fgm1+fgm2 collapse into the under-30 bucket")
	require.Equal(t, 10, statline.OrZero(k.Line.FieldGoals30to39))
	require.Equal(t, 5, statline.OrZero(k.Line.FieldGoals40to49))
	require.Equal(t, 4, statline.OrZero(k.Line.FieldGoals50Plus))
	require.Equal(t, 45, statline.OrZero(k.Line.ExtraPointsMade))
	require.InDelta(t, 88.2, *k.Line.FieldGoalPercentage, 0.001)
	require.InDelta(t, 97.8, *k.Line.ExtraPointPercentage, 0.001)
}

func TestParseFantasyPage_EmptyDocument(t *testing.T) {
	records, err := ParseFantasyPage([]byte("<html><body></body></html>"), "2024")
	require.NoError(t, err)
	require.Empty(t, records)
}
