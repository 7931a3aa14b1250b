package main

import (
	"errors"
	"testing"
)

// baseProfile returns a fully-populated profile for calorie tests. Individual
// tests override fields to exercise specific branches.
func baseProfile() Profile {
	return Profile{
		Name:          "arman",
		Age:           30,
		Gender:        "male",
		WeightKG:      70,
		HeightCM:      176,
		ActivityLevel: "sedentary",
		Goal:          GoalLoseWeight,
	}
}

/* ─── BMR accuracy tests ─────────────────────────────────────────────── */

// TestComputeBMR_Male verifies the male Mifflin-St Jeor constant.
// 10*70 + 6.25*176 - 5*30 + 5 = 700 + 1100 - 150 + 5 = 1655
func TestComputeBMR_Male(t *testing.T) {
	bmr, err := computeBMR(baseProfile())
	if err != nil {
		t.Fatalf("computeBMR returned error: %v", err)
	}
	if bmr != 1655 {
		t.Errorf("male BMR = %g, want 1655", bmr)
	}
}

// TestComputeBMR_Female verifies the female branch: same inputs but -161
// instead of +5.
// 700 + 1100 - 150 - 161 = 1489
func TestComputeBMR_Female(t *testing.T) {
	p := baseProfile()
	p.Gender = "female"
	bmr, err := computeBMR(p)
	if err != nil {
		t.Fatalf("computeBMR returned error: %v", err)
	}
	if bmr != 1489 {
		t.Errorf("female BMR = %g, want 1489", bmr)
	}
}

/* ─── Guard tests ────────────────────────────────────────────────────── */

func TestComputeBMR_ImplausibleAge(t *testing.T) {
	cases := []struct {
		name string
		age  int
	}{
		{"zero age", 0},
		{"negative age", -5},
		{"age over 130", 131},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseProfile()
			p.Age = tc.age
			if _, err := computeBMR(p); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("computeBMR error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestTargetCalories_UnknownActivityLevel(t *testing.T) {
	p := baseProfile()
	p.ActivityLevel = "heroic"
	if _, err := targetCalories(p); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("targetCalories error = %v, want ErrInvalidInput", err)
	}
}

func TestTargetCalories_UnknownGoal(t *testing.T) {
	p := baseProfile()
	p.Goal = "cutting"
	if _, err := targetCalories(p); !errors.Is(err, ErrUnknownGoal) {
		t.Errorf("targetCalories error = %v, want ErrUnknownGoal", err)
	}
}

/* ─── Target calorie tests ───────────────────────────────────────────── */

// TestTargetCalories_GoalOffsets verifies TDEE scaling and the fixed per-goal
// shift: -500 lose, +400 gain, 0 bulking.
// Sedentary male TDEE = round(1655 * 1.2) = 1986.
func TestTargetCalories_GoalOffsets(t *testing.T) {
	cases := []struct {
		goal string
		want int
	}{
		{GoalLoseWeight, 1486}, // 1986 - 500
		{GoalGainWeight, 2386}, // 1986 + 400
		{GoalBulking, 1986},    // 1986 + 0
	}
	for _, tc := range cases {
		t.Run(tc.goal, func(t *testing.T) {
			p := baseProfile()
			p.Goal = tc.goal
			got, err := targetCalories(p)
			if err != nil {
				t.Fatalf("targetCalories returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("targetCalories(%s) = %d, want %d", tc.goal, got, tc.want)
			}
		})
	}
}

// TestTargetCalories_ActivityScaling verifies the multiplier table end of the
// computation with the moderate band.
// round(1655 * 1.55) = round(2565.25) = 2565; bulking keeps it unshifted.
func TestTargetCalories_ActivityScaling(t *testing.T) {
	p := baseProfile()
	p.ActivityLevel = "moderate"
	p.Goal = GoalBulking
	got, err := targetCalories(p)
	if err != nil {
		t.Fatalf("targetCalories returned error: %v", err)
	}
	if got != 2565 {
		t.Errorf("targetCalories(moderate, bulking) = %d, want 2565", got)
	}
}
