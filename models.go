package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL values zero the time and return nil so that
// *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Enumerated values ──────────────────────────────────────────────── */

// Goals accepted by the engine. These are the single source of truth for
// valid goal strings — the target-BMI and calorie-offset lookups key off them.
const (
	GoalLoseWeight = "lose_weight"
	GoalGainWeight = "gain_weight"
	GoalBulking    = "bulking"
)

// Risk labels returned by riskLevel. Every score 0–100 maps to exactly one.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Attention flags. Each is an independent predicate — a user can carry any
// subset regardless of their aggregate score or risk label.
const (
	FlagLowSleep     = "low_sleep"
	FlagLowActivity  = "low_activity"
	FlagUnhealthyBMI = "unhealthy_bmi"
)

/* ─── Domain structs ─────────────────────────────────────────────────── */

// Profile is the per-run user snapshot supplied fresh by the caller for each
// analysis. The engine never persists or mutates it.
type Profile struct {
	Name              string  `json:"name"`
	Age               int     `json:"age"`
	Gender            string  `json:"gender"` // "male" or "female"
	WeightKG          float64 `json:"weight_kg"`
	HeightCM          float64 `json:"height_cm"`
	DietaryPreference string  `json:"dietary_preference"`
	ActivityLevel     string  `json:"activity_level"`
	Goal              string  `json:"goal"`
}

// Vitals are the day's lifestyle inputs. HeartRateBPM is optional — a nil
// value is treated as the resting default (see restingHeartRate).
type Vitals struct {
	Steps        int     `json:"steps"`
	SleepHours   float64 `json:"sleep_hours"`
	HeartRateBPM *int    `json:"heart_rate_bpm"`
}

// restingHeartRate is assumed when the caller omits heart_rate_bpm.
const restingHeartRate = 72

// heartRate returns the supplied heart rate or the resting default.
func (v Vitals) heartRate() int {
	if v.HeartRateBPM == nil {
		return restingHeartRate
	}
	return *v.HeartRateBPM
}

// DerivedMetrics is the full output of one analysis run. Computed fresh from
// Profile+Vitals every time; only ever persisted as a new HistoryRecord.
type DerivedMetrics struct {
	BMI             float64  `json:"bmi"`
	HealthScore     int      `json:"health_score"`
	RiskLabel       string   `json:"risk_label"`
	TargetBMI       float64  `json:"target_bmi"`
	GoalProgressPct int      `json:"goal_progress_pct"`
	AttentionFlags  []string `json:"attention_flags"`
}

// HistoryRecord maps to the append-only analysis_history table. Records are
// never updated or deleted by this service.
type HistoryRecord struct {
	ID          int      `json:"id" db:"id"`
	RecordedAt  DateOnly `json:"recorded_at" db:"recorded_at"`
	Identity    string   `json:"identity" db:"identity"`
	WeightKG    float64  `json:"weight_kg" db:"weight_kg"`
	BMI         float64  `json:"bmi" db:"bmi"`
	HealthScore int      `json:"health_score" db:"health_score"`
	Steps       int      `json:"steps" db:"steps"`
	SleepHours  float64  `json:"sleep_hours" db:"sleep_hours"`
	Goal        string   `json:"goal" db:"goal"`
}

/* ─── Plan tables ────────────────────────────────────────────────────── */

// NutritionRow is one row of a nutrition plan table. OptionA and OptionB are
// two interchangeable meal choices at roughly the listed calories.
type NutritionRow struct {
	Meal     string `json:"meal"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	Calories int    `json:"calories"`
}

// WorkoutRow is one row of a weekly workout plan table.
type WorkoutRow struct {
	Day       string `json:"day"`
	FocusArea string `json:"focus_area"`
	Exercises string `json:"exercises"`
}

/* ─── Auth ───────────────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON
// responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// analysisRequest is the request body for POST /api/analysis and both plan
// endpoints.
type analysisRequest struct {
	Profile Profile `json:"profile"`
	Vitals  Vitals  `json:"vitals"`
}

// analysisResponse is returned by POST /api/analysis. Identity is the key the
// client should use for history queries — the profile name when present,
// otherwise a generated session key.
type analysisResponse struct {
	Identity string         `json:"identity"`
	Metrics  DerivedMetrics `json:"metrics"`
}

// nutritionPlanResponse is returned by POST /api/plans/nutrition. Status names
// the path taken (live model or static fallback) and, on fallback, why.
type nutritionPlanResponse struct {
	Plan           []NutritionRow `json:"plan"`
	Status         string         `json:"status"`
	TargetCalories int            `json:"target_calories"`
}

// workoutPlanResponse is returned by POST /api/plans/workout.
type workoutPlanResponse struct {
	Plan   []WorkoutRow `json:"plan"`
	Status string       `json:"status"`
	Focus  string       `json:"focus"`
}
