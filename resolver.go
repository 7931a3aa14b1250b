package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

/* ─── Resolver construction ──────────────────────────────────────────── */

// ResolverConfig carries everything the resolver needs, passed in explicitly
// at construction. With an empty APIKey the resolver deterministically serves
// the static fallback tables — no ambient credential lookup happens later.
type ResolverConfig struct {
	APIKey  string
	BaseURL string
	// Models is the ordered list of candidate model identifiers. Only a
	// model-not-available failure advances to the next one; an auth failure
	// aborts the whole list.
	Models  []string
	Timeout time.Duration
}

// PlanResolver produces nutrition and workout plan tables, preferring a live
// generation call and falling back to static tables. Its Resolve methods
// never surface service failures to the caller — every failure path yields a
// valid table plus a status string naming the cause.
type PlanResolver struct {
	cfg    ResolverConfig
	client *http.Client
}

var defaultModels = []string{"gpt-4o-mini", "gpt-4o"}

func NewPlanResolver(cfg ResolverConfig) *PlanResolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if len(cfg.Models) == 0 {
		cfg.Models = defaultModels
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &PlanResolver{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

/* ─── Service error classification ───────────────────────────────────── */

// errServiceAuth marks a bad-credentials failure. Retrying other models
// cannot succeed with a bad key, so the candidate loop aborts on it.
var errServiceAuth = errors.New("generation service rejected credentials")

// errModelUnavailable marks a model/route-not-found failure — the one class
// worth retrying against the next candidate model.
var errModelUnavailable = errors.New("model not available")

// classifyStatus converts a non-200 response into one of the error classes.
func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", errServiceAuth, status)
	case status == http.StatusNotFound,
		bytes.Contains(body, []byte("model_not_found")):
		return fmt.Errorf("%w: status %d", errModelUnavailable, status)
	default:
		return fmt.Errorf("generation service returned status %d: %s", status, body)
	}
}

/* ─── Prompt templates ───────────────────────────────────────────────── */

const nutritionSystemPrompt = `You are a nutrition planner. Create a one-day meal plan matching the user's calorie target and dietary preference.
Return ONLY a JSON array. Each element must have:
- "meal" (string, e.g. Breakfast / Lunch / Dinner / Snack)
- "option_a" (string, first meal choice)
- "option_b" (string, alternative meal choice)
- "calories" (integer, approximate calories for either option)
No explanation, no markdown.`

const workoutSystemPrompt = `You are a fitness coach. Create a weekly workout plan for the user.
Return ONLY a JSON array. Each element must have:
- "day" (string, e.g. Mon / Tue)
- "focus_area" (string, the day's training focus)
- "exercises" (string, comma-separated exercise list)
No explanation, no markdown.`

func nutritionUserPrompt(p Profile, v Vitals, calories int) string {
	return fmt.Sprintf(
		"User: %dy %s, %.1fkg, %.0fcm, activity level %s, resting HR %d, %d steps today, %.1fh sleep. "+
			"Dietary preference: %s. Goal: %s. Daily calorie target: %d kcal.",
		p.Age, p.Gender, p.WeightKG, p.HeightCM, p.ActivityLevel,
		v.heartRate(), v.Steps, v.SleepHours,
		p.DietaryPreference, p.Goal, calories)
}

func workoutUserPrompt(p Profile, bmi float64) string {
	return fmt.Sprintf("User: %dy %s, BMI %.2f, activity level %s. Goal: %s.",
		p.Age, p.Gender, bmi, p.ActivityLevel, p.Goal)
}

/* ─── Chat completions client ────────────────────────────────────────── */

// chatMessage is a single message in the chat completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// callChat sends one chat completions request against one model and returns
// the raw content of the first choice. Uses raw net/http rather than the
// vendor SDK — the request and response shapes are small and stable.
func (r *PlanResolver) callChat(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", r.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respBytes)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

// generate tries each candidate model in order and returns the first
// successful content together with the model that produced it. Only a
// model-not-available error advances the loop; an auth error (or any other
// failure) stops immediately.
func (r *PlanResolver) generate(ctx context.Context, systemPrompt, userPrompt string) (content, model string, err error) {
	for _, m := range r.cfg.Models {
		content, err = r.callChat(ctx, m, systemPrompt, userPrompt)
		if err == nil {
			return content, m, nil
		}
		if errors.Is(err, errModelUnavailable) {
			log.Printf("[resolver] model %s unavailable, trying next candidate", m)
			continue
		}
		return "", "", err
	}
	return "", "", err
}

/* ─── Response normalization ─────────────────────────────────────────── */

// stripCodeFence removes surrounding markdown code-fence markup, if any, so a
// fenced JSON array parses identically to a bare one.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// parseNutritionRows parses and schema-checks a nutrition plan response. A
// missing column or an empty array is treated the same as a parse failure —
// malformed data is never partially accepted.
func parseNutritionRows(content string) ([]NutritionRow, error) {
	var rows []NutritionRow
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &rows); err != nil {
		return nil, fmt.Errorf("parse nutrition plan: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("nutrition plan is empty")
	}
	for i, row := range rows {
		if row.Meal == "" || row.OptionA == "" || row.Calories <= 0 {
			return nil, fmt.Errorf("nutrition plan row %d is missing required columns", i)
		}
	}
	return rows, nil
}

// parseWorkoutRows parses and schema-checks a workout plan response.
func parseWorkoutRows(content string) ([]WorkoutRow, error) {
	var rows []WorkoutRow
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &rows); err != nil {
		return nil, fmt.Errorf("parse workout plan: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workout plan is empty")
	}
	for i, row := range rows {
		if row.Day == "" || row.Exercises == "" {
			return nil, fmt.Errorf("workout plan row %d is missing required columns", i)
		}
	}
	return rows, nil
}

/* ─── Resolution ─────────────────────────────────────────────────────── */

// ResolveNutritionPlan returns a nutrition plan table, a status string naming
// how it was produced, and the deterministic daily calorie target. The only
// returned errors are contract violations from the calorie computation
// (ErrInvalidInput / ErrUnknownGoal); service failures always degrade to the
// static table.
func (r *PlanResolver) ResolveNutritionPlan(ctx context.Context, p Profile, v Vitals) ([]NutritionRow, string, int, error) {
	calories, err := targetCalories(p)
	if err != nil {
		return nil, "", 0, err
	}

	if r.cfg.APIKey == "" {
		return backupNutritionPlan(p.Goal), "fallback: no generation credential configured", calories, nil
	}

	content, model, genErr := r.generate(ctx, nutritionSystemPrompt, nutritionUserPrompt(p, v, calories))
	if genErr != nil {
		log.Printf("[resolver] nutrition generation failed: %v", genErr)
		return backupNutritionPlan(p.Goal), "fallback: " + genErr.Error(), calories, nil
	}

	rows, parseErr := parseNutritionRows(content)
	if parseErr != nil {
		log.Printf("[resolver] nutrition response rejected: %v", parseErr)
		return backupNutritionPlan(p.Goal), "fallback: " + parseErr.Error(), calories, nil
	}
	return rows, "live plan from " + model, calories, nil
}

// ResolveWorkoutPlan mirrors ResolveNutritionPlan without the calorie
// computation. The focus label comes from the current BMI on every path.
func (r *PlanResolver) ResolveWorkoutPlan(ctx context.Context, p Profile) ([]WorkoutRow, string, string, error) {
	bmi, err := calculateBMI(p.WeightKG, p.HeightCM)
	if err != nil {
		return nil, "", "", err
	}
	if _, err := targetBMI(p.Goal); err != nil {
		return nil, "", "", err
	}
	focus := workoutFocusLabel(bmi)

	if r.cfg.APIKey == "" {
		return backupWorkoutPlan(p.Goal), "fallback: no generation credential configured", focus, nil
	}

	content, model, genErr := r.generate(ctx, workoutSystemPrompt, workoutUserPrompt(p, bmi))
	if genErr != nil {
		log.Printf("[resolver] workout generation failed: %v", genErr)
		return backupWorkoutPlan(p.Goal), "fallback: " + genErr.Error(), focus, nil
	}

	rows, parseErr := parseWorkoutRows(content)
	if parseErr != nil {
		log.Printf("[resolver] workout response rejected: %v", parseErr)
		return backupWorkoutPlan(p.Goal), "fallback: " + parseErr.Error(), focus, nil
	}
	return rows, "live plan from " + model, focus, nil
}
