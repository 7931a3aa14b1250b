package main

import (
	"errors"
	"fmt"
	"math"
)

// Hard-failure sentinels. Both indicate a contract violation by the caller
// (bad upstream validation or a schema bug), never a runtime condition to
// degrade from — handlers translate them to 400, everything else to 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownGoal  = errors.New("unknown goal")
)

// goalTargetBMIs maps each goal to the BMI the user is working towards.
// Also used for goal validation — a goal missing here is rejected everywhere.
var goalTargetBMIs = map[string]float64{
	GoalLoseWeight: 22.0,
	GoalGainWeight: 23.5,
	GoalBulking:    24.5,
}

// calculateBMI returns weight / height² rounded to 2 decimals.
// Non-positive height or weight is an ErrInvalidInput — dividing by a zero or
// negative height must never be silently corrected.
func calculateBMI(weightKG, heightCM float64) (float64, error) {
	if heightCM <= 0 {
		return 0, fmt.Errorf("%w: height_cm must be positive, got %g", ErrInvalidInput, heightCM)
	}
	if weightKG <= 0 {
		return 0, fmt.Errorf("%w: weight_kg must be positive, got %g", ErrInvalidInput, weightKG)
	}
	h := heightCM / 100
	return math.Round(weightKG/(h*h)*100) / 100, nil
}

// targetBMI returns the BMI the given goal aims at, or ErrUnknownGoal.
func targetBMI(goal string) (float64, error) {
	t, ok := goalTargetBMIs[goal]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGoal, goal)
	}
	return t, nil
}

// healthScore computes the 0–100 aggregate score using the flat additive
// model: start at 80, adjust per band, clamp. Steps and sleep bands overlap
// deliberately (steps < 5000 is a penalty even before the low-activity flag
// at 4000 triggers).
func healthScore(bmi float64, steps int, sleepHours float64) int {
	score := 80
	if steps > 10000 {
		score += 10
	}
	if steps < 5000 {
		score -= 10
	}
	if sleepHours >= 7 && sleepHours <= 9 {
		score += 10
	}
	if sleepHours < 6 {
		score -= 10
	}
	if bmi >= 18.5 && bmi <= 25 {
		score += 5
	} else {
		score -= 5
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// riskLevel buckets a score into a risk label. Total over all ints; the
// boundary values 75 and 50 belong to the lower-risk bucket.
func riskLevel(score int) string {
	switch {
	case score >= 75:
		return RiskLow
	case score >= 50:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// attentionFlags evaluates the independent attention predicates. The result
// is unrelated to healthScore/riskLevel on purpose: a high-risk user can have
// no flags and a low-risk user can have several. Always returns a non-nil
// slice so the empty case serializes as [] rather than null.
func attentionFlags(bmi float64, steps int, sleepHours float64) []string {
	flags := []string{}
	if sleepHours < 6 {
		flags = append(flags, FlagLowSleep)
	}
	if steps < 4000 {
		flags = append(flags, FlagLowActivity)
	}
	if bmi < 18.5 || bmi > 30 {
		flags = append(flags, FlagUnhealthyBMI)
	}
	return flags
}

// goalProgress returns how close the current BMI is to the goal's target as a
// percentage: 100 at the target, linearly down to 0 at a distance of 10 BMI
// points or more.
func goalProgress(bmi float64, goal string) (int, error) {
	target, err := targetBMI(goal)
	if err != nil {
		return 0, err
	}
	pct := int(math.Round((1 - math.Abs(bmi-target)/10) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

// deriveMetrics runs the full calculator for one analysis. Pure — no I/O, no
// clock, no ambient state.
func deriveMetrics(p Profile, v Vitals) (DerivedMetrics, error) {
	bmi, err := calculateBMI(p.WeightKG, p.HeightCM)
	if err != nil {
		return DerivedMetrics{}, err
	}
	target, err := targetBMI(p.Goal)
	if err != nil {
		return DerivedMetrics{}, err
	}
	progress, err := goalProgress(bmi, p.Goal)
	if err != nil {
		return DerivedMetrics{}, err
	}
	score := healthScore(bmi, v.Steps, v.SleepHours)
	return DerivedMetrics{
		BMI:             bmi,
		HealthScore:     score,
		RiskLabel:       riskLevel(score),
		TargetBMI:       target,
		GoalProgressPct: progress,
		AttentionFlags:  attentionFlags(bmi, v.Steps, v.SleepHours),
	}, nil
}
