package main

/* ─── Static fallback plans ──────────────────────────────────────────── */

// Static plan tables served when the generation service is not configured,
// unreachable, or returns something unusable. Selected purely by goal;
// unknown goals get the bulking table (the resolver validates goals before
// calling these, so that branch only covers internal misuse).

func backupNutritionPlan(goal string) []NutritionRow {
	switch goal {
	case GoalLoseWeight:
		return []NutritionRow{
			{Meal: "Breakfast", OptionA: "Oats + fruits", OptionB: "Vegetable poha", Calories: 300},
			{Meal: "Lunch", OptionA: "Dal + rice", OptionB: "Grilled chicken salad", Calories: 450},
			{Meal: "Dinner", OptionA: "Salad + soup", OptionB: "Stir-fried vegetables + tofu", Calories: 350},
		}
	case GoalGainWeight:
		return []NutritionRow{
			{Meal: "Breakfast", OptionA: "Milk + banana", OptionB: "Peanut butter toast + eggs", Calories: 450},
			{Meal: "Lunch", OptionA: "Rice + paneer", OptionB: "Pasta + chicken", Calories: 650},
			{Meal: "Dinner", OptionA: "Roti + curd", OptionB: "Rice + beans + ghee", Calories: 550},
		}
	default:
		return []NutritionRow{
			{Meal: "Breakfast", OptionA: "Eggs / Paneer", OptionB: "Greek yogurt + granola", Calories: 500},
			{Meal: "Lunch", OptionA: "Rice + chicken", OptionB: "Quinoa + salmon", Calories: 700},
			{Meal: "Dinner", OptionA: "Protein bowl", OptionB: "Steak + sweet potato", Calories: 600},
		}
	}
}

func backupWorkoutPlan(goal string) []WorkoutRow {
	switch goal {
	case GoalLoseWeight:
		return []WorkoutRow{
			{Day: "Mon", FocusArea: "Cardio + Core", Exercises: "Treadmill intervals, planks, mountain climbers"},
			{Day: "Wed", FocusArea: "HIIT", Exercises: "Burpees, jump squats, kettlebell swings"},
			{Day: "Fri", FocusArea: "Low Intensity", Exercises: "Brisk walk 45 min, stretching"},
		}
	case GoalGainWeight:
		return []WorkoutRow{
			{Day: "Mon", FocusArea: "Upper Body", Exercises: "Bench press, rows, overhead press"},
			{Day: "Wed", FocusArea: "Lower Body", Exercises: "Squats, deadlifts, lunges"},
			{Day: "Fri", FocusArea: "Full Body", Exercises: "Pull-ups, dips, farmer carries"},
		}
	default:
		return []WorkoutRow{
			{Day: "Mon", FocusArea: "Chest + Triceps", Exercises: "Bench press, incline dumbbell press, pushdowns"},
			{Day: "Tue", FocusArea: "Back + Biceps", Exercises: "Deadlifts, barbell rows, curls"},
			{Day: "Thu", FocusArea: "Legs", Exercises: "Squats, leg press, calf raises"},
		}
	}
}

// workoutFocusLabel derives the plan's headline focus from the current BMI
// rather than from the goal string — the goal says where the user wants to
// go, the BMI says what the body needs first.
func workoutFocusLabel(bmi float64) string {
	switch {
	case bmi > 25:
		return "Fat Loss & Cardio"
	case bmi < 18.5:
		return "Muscle Building"
	default:
		return "General Fitness"
	}
}
