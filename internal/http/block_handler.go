package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/worktime-calendar/internal/application"
	"github.com/example/worktime-calendar/internal/timeblock"
)

// actorHeader names the person id a client claims for history attribution.
const actorHeader = "X-Actor"

type blockService interface {
	CreateBlock(ctx context.Context, params application.CreateBlockParams) (timeblock.WeekPayload, error)
	UpdateBlock(ctx context.Context, params application.UpdateBlockParams) (timeblock.WeekPayload, error)
	DeleteBlock(ctx context.Context, params application.DeleteBlockParams) (timeblock.WeekPayload, error)
	WeekView(ctx context.Context, start string) (timeblock.WeekPayload, error)
	RecentHistory(ctx context.Context, limit int) ([]application.HistoryEntry, error)
}

// BlockHandler serves the week view, block mutations and the history feed.
type BlockHandler struct {
	service   blockService
	responder responder
	logger    *slog.Logger
}

func NewBlockHandler(service blockService, logger *slog.Logger) *BlockHandler {
	base := defaultLogger(logger)
	return &BlockHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BlockHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BlockHandler", operation, attrs...)
}

func (h *BlockHandler) Week(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload, err := h.service.WeekView(r.Context(), r.URL.Query().Get("start"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

func (h *BlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode block request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	payload, err := h.service.CreateBlock(r.Context(), application.CreateBlockParams{
		Actor:    r.Header.Get(actorHeader),
		PersonID: req.PersonID,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

func (h *BlockHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := BlockIDFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req patchBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode block patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	payload, err := h.service.UpdateBlock(r.Context(), application.UpdateBlockParams{
		Actor:   r.Header.Get(actorHeader),
		BlockID: id,
		Patch: application.BlockPatch{
			PersonID: req.PersonID,
			Start:    req.Start,
			End:      req.End,
		},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

func (h *BlockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := BlockIDFromContext(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	payload, err := h.service.DeleteBlock(r.Context(), application.DeleteBlockParams{
		Actor:   r.Header.Get(actorHeader),
		BlockID: id,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

func (h *BlockHandler) History(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}

	entries, err := h.service.RecentHistory(r.Context(), limit)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if entries == nil {
		entries = []application.HistoryEntry{}
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, entries)
}

type createBlockRequest struct {
	PersonID string `json:"personId"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type patchBlockRequest struct {
	PersonID *string `json:"personId"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
}
