package main

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryStore is the append-only log of completed analyses. Append writes
// exactly one record per run; Query returns an identity's records in
// chronological order (possibly empty). Implementations own whatever
// concurrency safety they need — the engine issues one synchronous call per
// run and nothing else.
type HistoryStore interface {
	Append(ctx context.Context, rec HistoryRecord) error
	Query(ctx context.Context, identity string) ([]HistoryRecord, error)
}

// pgHistoryStore backs HistoryStore with the analysis_history table.
type pgHistoryStore struct {
	db *pgxpool.Pool
}

func newPGHistoryStore(db *pgxpool.Pool) *pgHistoryStore {
	return &pgHistoryStore{db: db}
}

// Append inserts one history record.
func (s *pgHistoryStore) Append(ctx context.Context, rec HistoryRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO analysis_history
		   (recorded_at, identity, weight_kg, bmi, health_score, steps, sleep_hours, goal)
		 VALUES (@recordedAt, @identity, @weightKG, @bmi, @healthScore, @steps, @sleepHours, @goal)`,
		pgx.NamedArgs{
			"recordedAt":  rec.RecordedAt.Time,
			"identity":    rec.Identity,
			"weightKG":    rec.WeightKG,
			"bmi":         rec.BMI,
			"healthScore": rec.HealthScore,
			"steps":       rec.Steps,
			"sleepHours":  rec.SleepHours,
			"goal":        rec.Goal,
		})
	return err
}

// Query returns all records for an identity, oldest first. The id tiebreaker
// keeps same-day records in insertion order.
func (s *pgHistoryStore) Query(ctx context.Context, identity string) ([]HistoryRecord, error) {
	return queryMany[HistoryRecord](s.db, ctx,
		`SELECT * FROM analysis_history
		 WHERE identity = @identity
		 ORDER BY recorded_at ASC, id ASC`,
		pgx.NamedArgs{"identity": identity})
}
