package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// StoredPlan is a meal plan as persisted.
type StoredPlan struct {
	ID            string
	UserID        string
	WeekStartDate time.Time
	Plan          WeeklyMealPlan
	CreatedAt     time.Time
}

// PlanRepository is a database-backed repository for meal plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a generated meal plan into the database.
func (r *PlanRepository) Save(ctx context.Context, userID string, plan WeeklyMealPlan) error {
	planData, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	createdAt := plan.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (id, user_id, week_start_date, plan_data, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		plan.ID, userID, plan.WeekStartDate.UTC(), string(planData), createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert meal plan %s: %w", plan.ID, err)
	}
	return nil
}

// Get retrieves a meal plan by its ID.
func (r *PlanRepository) Get(ctx context.Context, id string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, week_start_date, plan_data, created_at
		FROM meal_plans WHERE id = ?`, id)

	p, err := scanPlan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Plan not found
		}
		return nil, fmt.Errorf("failed to get meal plan %s: %w", id, err)
	}
	return p, nil
}

// ListRecentByUserID retrieves the N most recent meal plans for a given user.
func (r *PlanRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, week_start_date, plan_data, created_at
		FROM meal_plans WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meal plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			log.Printf("Warning: Skipping unreadable meal plan for user %s: %v", userID, err)
			continue
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (*StoredPlan, error) {
	var (
		p        StoredPlan
		planData string
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.WeekStartDate, &planData, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(planData), &p.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan %s: %w", p.ID, err)
	}
	return &p, nil
}
