package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save stores the shopping list of a meal plan, replacing any earlier one.
func (r *Repository) Save(ctx context.Context, userID, mealPlanID string, list SmartShoppingList) (int64, error) {
	listJSON, err := json.Marshal(list)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO shopping_lists (meal_plan_id, user_id, list_data, total_cost, total_savings, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(meal_plan_id) DO UPDATE SET
			list_data = excluded.list_data,
			total_cost = excluded.total_cost,
			total_savings = excluded.total_savings,
			created_at = excluded.created_at
		RETURNING id`,
		mealPlanID, userID, string(listJSON), list.TotalCost, list.TotalSavings, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	return id, nil
}

// GetByMealPlanID retrieves a shopping list by meal plan ID.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID string) (*ShoppingList, error) {
	var (
		list     ShoppingList
		listData string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, meal_plan_id, list_data, created_at
		FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID,
	).Scan(&list.ID, &list.UserID, &list.MealPlanID, &listData, &list.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No shopping list found
		}
		return nil, fmt.Errorf("failed to get shopping list by meal plan ID: %w", err)
	}

	if err := json.Unmarshal([]byte(listData), &list.List); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list: %w", err)
	}
	return &list, nil
}

// DeleteByMealPlanID deletes a shopping list by meal plan ID.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
