package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/impapp/backend/internal/ledger"
	"github.com/impapp/backend/internal/middleware"
	"github.com/impapp/backend/internal/models"
)

type UpdateRequest struct {
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	WeightKg       float64 `json:"weight_kg"`
	HeightCm       float64 `json:"height_cm"`
	ActivityFactor float64 `json:"activity_factor"`
	WeightGoalKg   float64 `json:"weight_goal_kg"`
	GoalType       string  `json:"goal_type"`
}

type Handler struct {
	ledgerSvc ledger.Service
	log       *slog.Logger
}

func NewHandler(ledgerSvc ledger.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{ledgerSvc: ledgerSvc, log: log}
}

func validGoal(g string) bool {
	switch g {
	case models.GoalMaintain, models.GoalLoseHalfKg, models.GoalLoseOneKg, models.GoalGain:
		return true
	}
	return false
}

// PUT /api/v1/profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserFromCtx(r.Context())
	if userID == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.Age <= 0 || req.WeightKg <= 0 || req.HeightCm <= 0 {
		http.Error(w, `{"error":"age, weight_kg and height_cm must be positive"}`, http.StatusBadRequest)
		return
	}
	if req.Gender != "male" && req.Gender != "female" {
		http.Error(w, `{"error":"gender must be male or female"}`, http.StatusBadRequest)
		return
	}
	if req.ActivityFactor == 0 {
		req.ActivityFactor = 1.2 // sedentary
	}
	if req.GoalType == "" {
		req.GoalType = models.GoalMaintain
	}
	if !validGoal(req.GoalType) {
		http.Error(w, `{"error":"invalid goal_type"}`, http.StatusBadRequest)
		return
	}

	p := models.Profile{
		Age:            req.Age,
		Gender:         req.Gender,
		WeightKg:       req.WeightKg,
		HeightCm:       req.HeightCm,
		ActivityFactor: req.ActivityFactor,
		WeightGoalKg:   req.WeightGoalKg,
		GoalType:       req.GoalType,
		MaintenanceCalories: Maintenance(
			req.Age, req.Gender, req.WeightKg, req.HeightCm, req.ActivityFactor, req.GoalType,
		),
	}
	snap, err := h.ledgerSvc.SetProfile(r.Context(), userID, p)
	if err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			http.Error(w, `{"error":"concurrent update, retry"}`, http.StatusConflict)
			return
		}
		h.log.Error("profile update failed", "user", userID, "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(snap.Profile)
}
