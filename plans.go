package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// getNutritionPlan returns a nutrition plan table for the submitted profile.
// POST /api/plans/nutrition. Always 200 with a usable table when the inputs
// are valid — service failures show up only in the status field.
func (h *Handler) getNutritionPlan(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateVitals(req.Vitals); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	plan, status, calories, err := h.resolver.ResolveNutritionPlan(c.Request.Context(), req.Profile, req.Vitals)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnknownGoal) {
			apiError(c, http.StatusBadRequest, err.Error())
		} else {
			apiError(c, http.StatusInternalServerError, "failed to resolve nutrition plan")
		}
		return
	}

	c.JSON(http.StatusOK, nutritionPlanResponse{Plan: plan, Status: status, TargetCalories: calories})
}

// getWorkoutPlan returns a weekly workout plan table for the submitted
// profile. POST /api/plans/workout.
func (h *Handler) getWorkoutPlan(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, status, focus, err := h.resolver.ResolveWorkoutPlan(c.Request.Context(), req.Profile)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnknownGoal) {
			apiError(c, http.StatusBadRequest, err.Error())
		} else {
			apiError(c, http.StatusInternalServerError, "failed to resolve workout plan")
		}
		return
	}

	c.JSON(http.StatusOK, workoutPlanResponse{Plan: plan, Status: status, Focus: focus})
}
