package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/impapp/backend/internal/ledger"
	"github.com/impapp/backend/internal/middleware"
)

// RedemptionRepo is the subset of Repository the handler needs.
type RedemptionRepo interface {
	CreateTx(ctx context.Context, tx pgx.Tx, rd *Redemption) error
	ListByUser(ctx context.Context, userID string) ([]*Redemption, error)
}

type RedeemRequest struct {
	OptionID string `json:"option_id"`
}

type RedeemResponse struct {
	RedemptionID string `json:"redemption_id"`
	OptionID     string `json:"option_id"`
	Cost         int    `json:"cost"`
	Points       int    `json:"points"`
	Status       string `json:"status"`
}

type Handler struct {
	ledgerSvc     ledger.Service
	repo          RedemptionRepo
	insertFulfill InsertFulfillTxFunc
	log           *slog.Logger
}

func NewHandler(ledgerSvc ledger.Service, repo RedemptionRepo, insertFulfill InsertFulfillTxFunc, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{ledgerSvc: ledgerSvc, repo: repo, insertFulfill: insertFulfill, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/v1/rewards/options
func (h *Handler) ListOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Options())
}

// POST /api/v1/rewards/redeem
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	opt, ok := OptionByID(req.OptionID)
	if !ok {
		http.Error(w, `{"error":"unknown redeem option"}`, http.StatusBadRequest)
		return
	}

	rd := &Redemption{
		ID:       uuid.New(),
		UserID:   userID,
		OptionID: opt.ID,
		Title:    opt.Title,
		Cost:     opt.Cost,
		Status:   StatusPending,
	}
	record := func(ctx context.Context, tx pgx.Tx) error {
		if err := h.repo.CreateTx(ctx, tx, rd); err != nil {
			return err
		}
		return h.insertFulfill(ctx, tx, FulfillArgs{
			RedemptionID: rd.ID,
			UserID:       userID,
			OptionID:     opt.ID,
		})
	}

	snap, err := h.ledgerSvc.Redeem(r.Context(), userID, opt.Cost, record)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientPoints):
			http.Error(w, `{"error":"insufficient points"}`, http.StatusPaymentRequired)
		case errors.Is(err, ledger.ErrConflict):
			http.Error(w, `{"error":"concurrent update, retry"}`, http.StatusConflict)
		default:
			h.log.Error("redeem failed", "user", userID, "option", opt.ID, "error", err)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, RedeemResponse{
		RedemptionID: rd.ID.String(),
		OptionID:     opt.ID,
		Cost:         opt.Cost,
		Points:       snap.Points,
		Status:       rd.Status,
	})
}

// GET /api/v1/rewards/redemptions
func (h *Handler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	list, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error("list redemptions failed", "user", userID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*Redemption{}
	}
	writeJSON(w, http.StatusOK, list)
}
