package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/impapp/backend/internal/middleware"
	"github.com/impapp/backend/internal/models"
)

// LogRequest carries one resolved consumption event. Calories may be
// fractional (per-serving arithmetic upstream); it is rounded to the nearest
// kcal before entering the ledger. GreenEligible is the caller's eligibility
// policy for the eco bonus.
type LogRequest struct {
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	GreenEligible bool    `json:"green_eligible"`
}

type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /api/v1/log
func (h *Handler) LogEvent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	input := EntryInput{
		Name:     req.Name,
		Calories: int(math.Round(req.Calories)),
	}
	snap, err := h.svc.LogEvent(r.Context(), userID, input, req.GreenEligible)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEntry):
			http.Error(w, `{"error":"entry must have a name and non-negative calories"}`, http.StatusBadRequest)
		case errors.Is(err, ErrConflict):
			http.Error(w, `{"error":"concurrent update, retry"}`, http.StatusConflict)
		default:
			h.log.Error("log event failed", "user", userID, "error", err)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GET /api/v1/me
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	snap, err := h.svc.Snapshot(r.Context(), userID)
	if err != nil {
		h.log.Error("snapshot failed", "user", userID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GET /api/v1/today
func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	snap, err := h.svc.Snapshot(r.Context(), userID)
	if err != nil {
		h.log.Error("today fetch failed", "user", userID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap.Today)
}

// GET /api/v1/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	snap, err := h.svc.Snapshot(r.Context(), userID)
	if err != nil {
		h.log.Error("history fetch failed", "user", userID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if snap.History == nil {
		snap.History = []models.DayBucket{}
	}
	writeJSON(w, http.StatusOK, snap.History)
}
