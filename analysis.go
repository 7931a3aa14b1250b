package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// validateVitals bounds-checks the day's lifestyle inputs. These are user
// input errors, not contract violations — reject with a message the form can
// show directly.
func validateVitals(v Vitals) string {
	if v.Steps < 0 {
		return "steps must not be negative"
	}
	if v.SleepHours < 0 || v.SleepHours > 24 {
		return "sleep_hours must be between 0 and 24"
	}
	if v.HeartRateBPM != nil && (*v.HeartRateBPM < 20 || *v.HeartRateBPM > 250) {
		return "heart_rate_bpm must be between 20 and 250"
	}
	return ""
}

// runAnalysis executes one full analysis: derive metrics from the submitted
// profile and vitals, append exactly one history record, return the metrics.
// POST /api/analysis.
func (h *Handler) runAnalysis(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateVitals(req.Vitals); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	metrics, err := deriveMetrics(req.Profile, req.Vitals)
	if err != nil {
		// InvalidInput / UnknownGoal are caller bugs — surface them, never
		// silently correct the inputs.
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnknownGoal) {
			apiError(c, http.StatusBadRequest, err.Error())
		} else {
			apiError(c, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	// History is keyed by the profile name when given; anonymous runs get a
	// fresh session key the client can reuse for history queries.
	identity := req.Profile.Name
	if identity == "" {
		identity = uuid.NewString()
	}

	rec := HistoryRecord{
		RecordedAt:  DateOnly{time.Now().UTC()},
		Identity:    identity,
		WeightKG:    req.Profile.WeightKG,
		BMI:         metrics.BMI,
		HealthScore: metrics.HealthScore,
		Steps:       req.Vitals.Steps,
		SleepHours:  req.Vitals.SleepHours,
		Goal:        req.Profile.Goal,
	}
	if err := h.history.Append(c.Request.Context(), rec); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to record analysis")
		return
	}

	c.JSON(http.StatusOK, analysisResponse{Identity: identity, Metrics: metrics})
}

// getHistory returns an identity's analysis records, oldest first.
// GET /api/history?identity=name-or-session-key.
// Returns an empty array (not null) when the identity has no records yet.
func (h *Handler) getHistory(c *gin.Context) {
	identity := c.Query("identity")
	if identity == "" {
		apiError(c, http.StatusBadRequest, "identity query param is required")
		return
	}

	records, err := h.history.Query(c.Request.Context(), identity)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch history")
		return
	}
	if records == nil {
		records = []HistoryRecord{}
	}

	c.JSON(http.StatusOK, records)
}
