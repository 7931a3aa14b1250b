package main

import (
	"fmt"
	"math"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for request validation before anything touches the resolver.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// goalCalorieOffsets shifts the maintenance TDEE per goal: a deficit for
// weight loss, a surplus for gaining, none for bulking maintenance.
var goalCalorieOffsets = map[string]int{
	GoalLoseWeight: -500,
	GoalGainWeight: 400,
	GoalBulking:    0,
}

// computeBMR computes BMR via Mifflin-St Jeor from metric inputs. The gender
// branch is the formula's own constant: +5 for male, -161 otherwise.
// Guards against implausible ages rather than producing a nonsense estimate.
func computeBMR(p Profile) (float64, error) {
	if p.Age <= 0 || p.Age > 130 {
		return 0, fmt.Errorf("%w: age must be in 1..130, got %d", ErrInvalidInput, p.Age)
	}
	if p.WeightKG <= 0 || p.HeightCM <= 0 {
		return 0, fmt.Errorf("%w: weight and height must be positive", ErrInvalidInput)
	}
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, nil
}

// targetCalories computes the daily calorie target for a profile:
// TDEE (BMR × activity multiplier) shifted by the goal's fixed offset.
// Pure and deterministic — the resolver relies on this never failing for
// inputs that passed request validation.
func targetCalories(p Profile) (int, error) {
	bmr, err := computeBMR(p)
	if err != nil {
		return 0, err
	}
	mult, found := activityMultipliers[p.ActivityLevel]
	if !found {
		return 0, fmt.Errorf("%w: unknown activity_level %q", ErrInvalidInput, p.ActivityLevel)
	}
	offset, found := goalCalorieOffsets[p.Goal]
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGoal, p.Goal)
	}
	return int(math.Round(bmr*mult)) + offset, nil
}
