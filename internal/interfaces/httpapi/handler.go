package httpapi

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/gridironhq/playerboard/internal/domain/roster"
	"github.com/gridironhq/playerboard/internal/domain/statline"
	"github.com/gridironhq/playerboard/internal/domain/team"
	"github.com/gridironhq/playerboard/internal/platform/logging"
	"github.com/gridironhq/playerboard/internal/usecase"
)

const maxRequestBodySize = 1 << 20

type Handler struct {
	boardService     *usecase.BoardService
	directoryService *usecase.DirectoryService
	statService      *usecase.StatService
	refreshService   *usecase.RefreshService
	archiveService   *usecase.ArchiveService
	defaultSeason    string
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	boardService *usecase.BoardService,
	directoryService *usecase.DirectoryService,
	statService *usecase.StatService,
	refreshService *usecase.RefreshService,
	archiveService *usecase.ArchiveService,
	defaultSeason string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		boardService:     boardService,
		directoryService: directoryService,
		statService:      statService,
		refreshService:   refreshService,
		archiveService:   archiveService,
		defaultSeason:    strings.TrimSpace(defaultSeason),
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type seasonParams struct {
	Season string `validate:"required,numeric,len=4"`
}

func (h *Handler) ListBoardPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoardPlayers")
	defer span.End()

	h.serveBoard(ctx, w, h.defaultSeason)
}

func (h *Handler) ListBoardPlayersBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoardPlayersBySeason")
	defer span.End()

	h.serveBoard(ctx, w, r.PathValue("season"))
}

func (h *Handler) serveBoard(ctx context.Context, w http.ResponseWriter, season string) {
	if err := h.validator.Struct(seasonParams{Season: season}); err != nil {
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "season must be a four-digit year, got %q", season))
		return
	}

	players, err := h.boardService.Assemble(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "assemble board failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) GetMatchReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchReport")
	defer span.End()

	season := r.PathValue("season")
	if err := h.validator.Struct(seasonParams{Season: season}); err != nil {
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "season must be a four-digit year, got %q", season))
		return
	}

	report, err := h.boardService.MatchReport(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "match report failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

type teamDTO struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	ByeWeek int    `json:"byeWeek,omitempty"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items := make([]teamDTO, 0, len(team.AllCodes))
	for _, code := range team.AllCodes {
		items = append(items, teamDTO{
			Code:    code,
			Name:    team.FullNames[code],
			ByeWeek: team.ByeWeeks[code],
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type directoryPlayerDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Team      string   `json:"team,omitempty"`
	Positions []string `json:"positions"`
	Age       int      `json:"age,omitempty"`
	Status    string   `json:"status,omitempty"`
}

func (h *Handler) ListDirectoryPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDirectoryPlayers")
	defer span.End()

	players, err := h.directoryService.ListActive(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list directory players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]directoryPlayerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, directoryPlayerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func directoryPlayerToDTO(p roster.DirectoryPlayer) directoryPlayerDTO {
	positions := make([]string, 0, len(p.RawPositions))
	for _, pos := range p.RawPositions {
		positions = append(positions, string(pos))
	}
	return directoryPlayerDTO{
		ID:        p.ID,
		Name:      p.FullName,
		Team:      p.RawTeam,
		Positions: positions,
		Age:       p.Age,
		Status:    p.Status,
	}
}

type statRecordDTO struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Season   string `json:"season"`
	Age      string `json:"age,omitempty"`
	statline.Line
}

func (h *Handler) ListSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonStats")
	defer span.End()

	season := r.PathValue("season")
	if err := h.validator.Struct(seasonParams{Season: season}); err != nil {
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "season must be a four-digit year, got %q", season))
		return
	}

	records, err := h.statService.ListSeason(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "list season stats failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, statRecordDTO{
			Name:     record.RawName,
			Team:     record.RawTeam,
			Position: string(record.RawPosition),
			Season:   record.Season,
			Age:      record.Age,
			Line:     record.Line,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type archivedPayloadDTO struct {
	Source     string    `json:"source"`
	EntityType string    `json:"entityType"`
	SeasonKey  string    `json:"seasonKey,omitempty"`
	BodyHash   string    `json:"bodyHash"`
	BodyBytes  int       `json:"bodyBytes"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// ListArchivedFeedPayloads lists snapshot metadata for one feed source.
// Bodies stay out of the response; they can run to tens of megabytes.
func (h *Handler) ListArchivedFeedPayloads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArchivedFeedPayloads")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "limit must be a positive integer, got %q", raw))
			return
		}
		limit = parsed
	}

	source := r.PathValue("source")
	payloads, err := h.archiveService.ListRecent(ctx, source, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list archived feed payloads failed", "source", source, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]archivedPayloadDTO, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, archivedPayloadDTO{
			Source:     p.Source,
			EntityType: p.EntityType,
			SeasonKey:  p.SeasonKey,
			BodyHash:   p.BodyHash,
			BodyBytes:  len(p.Body),
			FetchedAt:  p.FetchedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type warmCacheRequest struct {
	Seasons    []string `json:"seasons" validate:"required,min=1,max=16,dive,numeric,len=4"`
	MaxWorkers int      `json:"maxWorkers" validate:"omitempty,min=1,max=8"`
	Force      bool     `json:"force"`
}

func (h *Handler) RunWarmCacheJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmCacheJob")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(ctx, w, errors.Wrap(usecase.ErrInvalidInput, "read request body"))
		return
	}

	var req warmCacheRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, errors.Wrap(usecase.ErrInvalidInput, "request body must be valid JSON"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "invalid warm-cache request: %v", err))
		return
	}

	result, err := h.refreshService.WarmSeasons(ctx, usecase.WarmInput{
		Seasons:    req.Seasons,
		MaxWorkers: req.MaxWorkers,
		Force:      req.Force,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "warm cache job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
