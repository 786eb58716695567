package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"grocery-planner/internal/shared"
)

// timestampLayout is how metric times are stored, so strftime and string
// comparisons work on them.
const timestampLayout = "2006-01-02 15:04:05"

// ExecutionMetric records metadata for a single LLM call.
type ExecutionMetric struct {
	AgentName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// PlanMetric records one weekly plan generation.
type PlanMetric struct {
	PlanID         string
	PlanDays       int
	TotalMeals     int
	DealPercentage int
	TotalCost      float64
	TotalSavings   float64
	LatencyMS      int64
	Timestamp      time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Record saves an LLM usage metric.
func (s *Store) Record(ctx context.Context, m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO execution_metrics (agent_name, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.AgentName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, ts.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution metric: %w", err)
	}
	return nil
}

// RecordMeta records metrics directly from shared.AgentMeta. Calls that used no tokens are skipped.
func (s *Store) RecordMeta(ctx context.Context, meta shared.AgentMeta) error {
	if meta.Usage.IsZero() {
		return nil
	}
	return s.Record(ctx, MapUsage(meta.AgentName, meta.Usage, meta.Latency))
}

// RecordPlan saves the outcome of a plan generation.
func (s *Store) RecordPlan(ctx context.Context, m PlanMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plan_metrics (plan_id, plan_days, total_meals, deal_percentage, total_cost, total_savings, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PlanID, m.PlanDays, m.TotalMeals, m.DealPercentage, m.TotalCost, m.TotalSavings, m.LatencyMS, ts.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan metric: %w", err)
	}
	return nil
}

// DailyUsage represents totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
	PlansGenerated  int
	TotalSavings    float64
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := s.now().AddDate(0, 0, -days).UTC().Format(timestampLayout)

	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', timestamp) AS day,
			COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(completion_tokens), 0), COUNT(*)
		FROM execution_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query execution metrics: %w", err)
	}

	var results []DailyUsage
	byDay := map[string]int{}
	for rows.Next() {
		var (
			u   DailyUsage
			day sql.NullString
		)
		if err := rows.Scan(&day, &u.TotalPrompt, &u.TotalCompletion, &u.TotalExecution); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan execution metrics: %w", err)
		}
		u.Date = "Unknown"
		if day.Valid {
			u.Date = day.String
		}
		byDay[u.Date] = len(results)
		results = append(results, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	planRows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', timestamp) AS day, COUNT(*), COALESCE(SUM(total_savings), 0)
		FROM plan_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan metrics: %w", err)
	}
	defer planRows.Close()

	for planRows.Next() {
		var (
			day     sql.NullString
			count   int
			savings float64
		)
		if err := planRows.Scan(&day, &count, &savings); err != nil {
			return nil, fmt.Errorf("failed to scan plan metrics: %w", err)
		}
		date := "Unknown"
		if day.Valid {
			date = day.String
		}
		i, ok := byDay[date]
		if !ok {
			byDay[date] = len(results)
			results = append(results, DailyUsage{Date: date})
			i = len(results) - 1
		}
		results[i].PlansGenerated = count
		results[i].TotalSavings = savings
	}
	if err := planRows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// returns how many rows were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := s.now().AddDate(0, 0, -olderThanDays).UTC().Format(timestampLayout)

	var total int64
	for _, table := range []string{"execution_metrics", "plan_metrics"} {
		res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE timestamp < ?", threshold)
		if err != nil {
			return total, fmt.Errorf("failed to clean up %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to count cleaned up %s: %w", table, err)
		}
		total += n
	}
	return total, nil
}

// MapUsage converts token usage to an ExecutionMetric.
func MapUsage(agentName string, usage shared.TokenUsage, latency time.Duration) ExecutionMetric {
	return ExecutionMetric{
		AgentName:        agentName,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
	}
}
