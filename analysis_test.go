package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

/* ─── In-memory history store ────────────────────────────────────────── */

// memHistoryStore is a HistoryStore test double. failAppend forces the
// append-error path.
type memHistoryStore struct {
	records    []HistoryRecord
	failAppend bool
}

func (s *memHistoryStore) Append(ctx context.Context, rec HistoryRecord) error {
	if s.failAppend {
		return errors.New("append failed")
	}
	rec.ID = len(s.records) + 1
	s.records = append(s.records, rec)
	return nil
}

func (s *memHistoryStore) Query(ctx context.Context, identity string) ([]HistoryRecord, error) {
	var out []HistoryRecord
	for _, rec := range s.records {
		if rec.Identity == identity {
			out = append(out, rec)
		}
	}
	return out, nil
}

/* ─── Test router setup ──────────────────────────────────────────────── */

// setupAPITest wires the handlers with an in-memory store and a resolver that
// has no credential (static plans only). Auth is bypassed the same way the
// middleware would pass a request through.
func setupAPITest(store *memHistoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		history:  store,
		resolver: NewPlanResolver(ResolverConfig{}),
	}
	router := gin.New()
	passAuth := func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}
	router.POST("/api/analysis", passAuth, h.runAnalysis)
	router.GET("/api/history", passAuth, h.getHistory)
	router.POST("/api/plans/nutrition", passAuth, h.getNutritionPlan)
	router.POST("/api/plans/workout", passAuth, h.getWorkoutPlan)
	return router
}

func doJSONRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validAnalysisBody = `{
  "profile": {"name":"arman","age":25,"gender":"male","weight_kg":70,"height_cm":175,
              "dietary_preference":"vegetarian","activity_level":"moderate","goal":"lose_weight"},
  "vitals": {"steps":6000,"sleep_hours":7}
}`

/* ─── Analysis endpoint tests ────────────────────────────────────────── */

func TestAnalysis_HappyPath(t *testing.T) {
	store := &memHistoryStore{}
	router := setupAPITest(store)

	w := doJSONRequest(router, "POST", "/api/analysis", validAnalysisBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp analysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Identity != "arman" {
		t.Errorf("identity = %q, want arman", resp.Identity)
	}
	if resp.Metrics.BMI != 22.86 {
		t.Errorf("bmi = %g, want 22.86", resp.Metrics.BMI)
	}
	if resp.Metrics.GoalProgressPct != 91 {
		t.Errorf("goal progress = %d, want 91", resp.Metrics.GoalProgressPct)
	}
	if resp.Metrics.RiskLabel != RiskLow {
		t.Errorf("risk = %q, want Low", resp.Metrics.RiskLabel)
	}

	// Exactly one record appended, matching the inputs.
	if len(store.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(store.records))
	}
	rec := store.records[0]
	if rec.Identity != "arman" || rec.WeightKG != 70 || rec.Steps != 6000 || rec.Goal != GoalLoseWeight {
		t.Errorf("unexpected record: %+v", rec)
	}
}

// TestAnalysis_AnonymousSessionKey: an empty name gets a generated session
// key, and the history record carries the same key.
func TestAnalysis_AnonymousSessionKey(t *testing.T) {
	store := &memHistoryStore{}
	router := setupAPITest(store)

	body := strings.Replace(validAnalysisBody, `"name":"arman"`, `"name":""`, 1)
	w := doJSONRequest(router, "POST", "/api/analysis", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp analysisResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Identity == "" {
		t.Fatal("expected generated identity, got empty")
	}
	if len(store.records) != 1 || store.records[0].Identity != resp.Identity {
		t.Errorf("record identity does not match response identity")
	}
}

func TestAnalysis_InvalidHeight(t *testing.T) {
	store := &memHistoryStore{}
	router := setupAPITest(store)

	body := strings.Replace(validAnalysisBody, `"height_cm":175`, `"height_cm":0`, 1)
	w := doJSONRequest(router, "POST", "/api/analysis", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.records) != 0 {
		t.Errorf("expected no history records on failure, got %d", len(store.records))
	}
}

func TestAnalysis_UnknownGoal(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	body := strings.Replace(validAnalysisBody, `"goal":"lose_weight"`, `"goal":"shredding"`, 1)
	w := doJSONRequest(router, "POST", "/api/analysis", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalysis_SleepOutOfRange(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	body := strings.Replace(validAnalysisBody, `"sleep_hours":7`, `"sleep_hours":25`, 1)
	w := doJSONRequest(router, "POST", "/api/analysis", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalysis_AppendFailure(t *testing.T) {
	router := setupAPITest(&memHistoryStore{failAppend: true})

	w := doJSONRequest(router, "POST", "/api/analysis", validAnalysisBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

/* ─── History endpoint tests ─────────────────────────────────────────── */

func TestHistory_RequiresIdentity(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	w := doJSONRequest(router, "GET", "/api/history", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHistory_ReturnsRecordsInOrder(t *testing.T) {
	store := &memHistoryStore{}
	router := setupAPITest(store)

	// Two runs for the same identity
	doJSONRequest(router, "POST", "/api/analysis", validAnalysisBody)
	doJSONRequest(router, "POST", "/api/analysis",
		strings.Replace(validAnalysisBody, `"weight_kg":70`, `"weight_kg":69.5`, 1))

	w := doJSONRequest(router, "GET", "/api/history?identity=arman", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var records []HistoryRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].WeightKG != 70 || records[1].WeightKG != 69.5 {
		t.Errorf("records out of order: %+v", records)
	}
}

// TestHistory_EmptyIsArray: an identity with no records gets [] — not null.
func TestHistory_EmptyIsArray(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	w := doJSONRequest(router, "GET", "/api/history?identity=nobody", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}

/* ─── Plan endpoint tests ────────────────────────────────────────────── */

// TestPlans_NutritionStaticPath: with no credential configured, the endpoint
// still returns a complete plan and names the fallback in the status.
func TestPlans_NutritionStaticPath(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	w := doJSONRequest(router, "POST", "/api/plans/nutrition", validAnalysisBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp nutritionPlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Plan) != 3 {
		t.Errorf("plan has %d rows, want 3", len(resp.Plan))
	}
	if !strings.HasPrefix(resp.Status, "fallback:") {
		t.Errorf("status = %q, want fallback prefix", resp.Status)
	}
	if resp.TargetCalories <= 0 {
		t.Errorf("target calories = %d, want > 0", resp.TargetCalories)
	}
}

func TestPlans_NutritionUnknownGoal(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	body := strings.Replace(validAnalysisBody, `"goal":"lose_weight"`, `"goal":"shredding"`, 1)
	w := doJSONRequest(router, "POST", "/api/plans/nutrition", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlans_WorkoutStaticPath(t *testing.T) {
	router := setupAPITest(&memHistoryStore{})

	w := doJSONRequest(router, "POST", "/api/plans/workout", validAnalysisBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp workoutPlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Plan) == 0 {
		t.Error("workout plan is empty")
	}
	// 70kg/175cm → BMI 22.86 → general band
	if resp.Focus != "General Fitness" {
		t.Errorf("focus = %q, want General Fitness", resp.Focus)
	}
}
