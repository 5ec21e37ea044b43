package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/gridironhq/playerboard/internal/domain/board"
	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/scoring"
	"github.com/gridironhq/playerboard/internal/domain/statline"
	"github.com/gridironhq/playerboard/internal/domain/team"
	"github.com/gridironhq/playerboard/internal/platform/logging"
)

// DirectoryProvider supplies the player identity feed.
type DirectoryProvider interface {
	ListPlayers(ctx context.Context) ([]roster.DirectoryPlayer, error)
}

// StatProvider supplies the seasonal stat feed.
type StatProvider interface {
	SeasonStats(ctx context.Context, season string) ([]statline.StatRecord, error)
}

type boardCache interface {
	GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error)
	Delete(ctx context.Context, key string)
}

// BoardService assembles the unified per-season player board: it joins the
// directory feed against the stat feed, scores each matched line, and serves
// the result from a per-season cache.
type BoardService struct {
	directory DirectoryProvider
	stats     StatProvider
	cache     boardCache
	rates     scoring.Rates
	logger    *logging.Logger
}

func NewBoardService(directory DirectoryProvider, stats StatProvider, cache boardCache, logger *logging.Logger) *BoardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BoardService{
		directory: directory,
		stats:     stats,
		cache:     cache,
		rates:     scoring.DefaultRates(),
		logger:    logger,
	}
}

// Assemble returns the full board for one season, sorted ascending by player
// name. Results are cached per season; concurrent requests for a cold season
// share one assembly.
func (s *BoardService) Assemble(ctx context.Context, season string) ([]board.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Assemble")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return nil, errors.Wrap(ErrInvalidInput, "season is required")
	}

	if s.cache == nil {
		return s.build(ctx, season)
	}

	value, err := s.cache.GetOrLoad(ctx, boardCacheKey(season), func(ctx context.Context) (any, error) {
		return s.build(ctx, season)
	})
	if err != nil {
		return nil, err
	}

	players, ok := value.([]board.Player)
	if !ok {
		return nil, errors.Newf("unexpected cached board type %T for season %s", value, season)
	}
	return players, nil
}

// Invalidate drops the cached board for one season so the next Assemble
// rebuilds it from the feeds.
func (s *BoardService) Invalidate(ctx context.Context, season string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, boardCacheKey(strings.TrimSpace(season)))
}

func boardCacheKey(season string) string {
	return "board:" + season
}

func (s *BoardService) build(ctx context.Context, season string) ([]board.Player, error) {
	directory, stats, err := s.fetchFeeds(ctx, season)
	if err != nil {
		return nil, err
	}

	players := assembleBoard(directory, stats, season, s.rates)

	s.logger.InfoContext(ctx, "assembled player board",
		"season", season,
		"directory_players", len(directory),
		"stat_records", len(stats),
		"board_size", len(players),
	)

	return players, nil
}

// fetchFeeds loads both feeds concurrently. Either failure aborts the whole
// assembly; the board cannot be built from one side alone.
func (s *BoardService) fetchFeeds(ctx context.Context, season string) ([]roster.DirectoryPlayer, []statline.StatRecord, error) {
	var (
		directory []roster.DirectoryPlayer
		stats     []statline.StatRecord
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		listed, err := s.directory.ListPlayers(ctx)
		if err != nil {
			return fmt.Errorf("%w: fetch player directory: %v", ErrDependencyUnavailable, err)
		}
		directory = listed
		return nil
	})
	p.Go(func(ctx context.Context) error {
		fetched, err := s.stats.SeasonStats(ctx, season)
		if err != nil {
			return fmt.Errorf("%w: fetch season %s stats: %v", ErrDependencyUnavailable, season, err)
		}
		stats = fetched
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	return directory, stats, nil
}

// assembleBoard runs the pure pipeline: synthesize missing defenses, filter,
// match, merge, score, sort. It never fails; malformed single records are
// skipped or scored as zero.
func assembleBoard(directory []roster.DirectoryPlayer, stats []statline.StatRecord, season string, rates scoring.Rates) []board.Player {
	directory = ensureDefenses(directory)

	out := make([]board.Player, 0, len(directory))
	for _, p := range directory {
		if !includePlayer(p) {
			continue
		}

		idx, matched := matchStatIndex(p, stats)
		var record statline.StatRecord
		if matched {
			record = stats[idx]
		}
		entry := mergePlayer(p, record, matched, season)
		if roster.NormalizeName(entry.Name) == "" {
			continue
		}
		if matched {
			entry.FantasyPoints = scoring.Score(entry.Position, entry.Line, rates)
		}
		out = append(out, entry)
	}

	// IDs are unique, so the tie-break keeps same-name players in a fixed
	// order no matter how the feeds shuffle between fetches.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// ensureDefenses appends one synthesized defense entry per franchise when the
// directory feed carries none of its own.
func ensureDefenses(directory []roster.DirectoryPlayer) []roster.DirectoryPlayer {
	for _, p := range directory {
		if p.IsDefense() {
			return directory
		}
	}
	return append(directory, roster.SynthesizeDefenses()...)
}

// includePlayer keeps active players at a fantasy position. Team defenses are
// franchise entities, not roster entries, so they bypass the active flag.
func includePlayer(p roster.DirectoryPlayer) bool {
	if p.IsDefense() {
		return true
	}
	return p.IsActive && p.HasFantasyPosition()
}

// matchStatIndex finds at most one stat record for a directory player and
// returns its index in feed order. Defenses pair on team alone; individuals
// pair on the normalized name+team key. Ties keep the first record.
func matchStatIndex(p roster.DirectoryPlayer, stats []statline.StatRecord) (int, bool) {
	wantTeam := team.Canonicalize(p.RawTeam)

	if p.IsDefense() {
		for i, record := range stats {
			if record.RawPosition != roster.PositionDefense {
				continue
			}
			if team.Canonicalize(record.RawTeam) == wantTeam && wantTeam != "" {
				return i, true
			}
		}
		return 0, false
	}

	wantName := roster.NormalizeName(p.FullName)
	if wantName == "" {
		return 0, false
	}
	for i, record := range stats {
		// A defense stat line never belongs to an individual, even on a
		// franchise-name collision.
		if record.RawPosition == roster.PositionDefense {
			continue
		}
		if roster.NormalizeName(record.RawName) == wantName &&
			team.Canonicalize(record.RawTeam) == wantTeam {
			return i, true
		}
	}
	return 0, false
}

// mergePlayer combines directory identity with the matched stat line. When no
// record matched, every stat category stays absent and the score stays zero.
func mergePlayer(p roster.DirectoryPlayer, record statline.StatRecord, matched bool, season string) board.Player {
	canonicalTeam := team.Canonicalize(p.RawTeam)
	displayTeam := canonicalTeam
	if displayTeam == "" {
		displayTeam = "FA"
	}

	entry := board.Player{
		ID:       p.ID,
		Name:     p.FullName,
		Team:     displayTeam,
		Position: p.PrimaryPosition(),
		Status:   p.Status,
		Active:   p.IsActive || p.IsDefense(),
		ByeWeek:  team.ByeWeek(canonicalTeam),
		Season:   season,
		Matched:  matched,
	}
	if p.Age > 0 {
		entry.Age = strconv.Itoa(p.Age)
	}

	if matched {
		entry.Line = record.Line
		if record.Age != "" {
			entry.Age = record.Age
		}
	}

	attachAvatars(&entry, p, canonicalTeam)
	return entry
}

func attachAvatars(entry *board.Player, p roster.DirectoryPlayer, canonicalTeam string) {
	if p.IsDefense() {
		if canonicalTeam != "" {
			logoTeam := strings.ToLower(canonicalTeam)
			entry.ESPNAvatar = "https://a.espncdn.com/i/teamlogos/nfl/500/" + logoTeam + ".png"
			entry.SleeperAvatar = "https://sleepercdn.com/images/team_logos/nfl/" + logoTeam + ".png"
		}
	} else {
		if p.ESPNID != "" {
			entry.ESPNAvatar = "https://a.espncdn.com/i/headshots/nfl/players/full/" + p.ESPNID + ".png"
		}
		if p.ID != "" {
			entry.SleeperAvatar = "https://sleepercdn.com/content/nfl/players/" + p.ID + ".jpg"
		}
		if p.YahooID != "" {
			entry.YahooAvatar = "https://s.yimg.com/iu/api/res/1.2/" + p.YahooID + ".png"
		}
	}

	switch {
	case entry.ESPNAvatar != "":
		entry.ImageURL = entry.ESPNAvatar
	case entry.SleeperAvatar != "":
		entry.ImageURL = entry.SleeperAvatar
	case entry.YahooAvatar != "":
		entry.ImageURL = entry.YahooAvatar
	default:
		entry.ImageURL = "/blank-avatar.webp"
	}
}
