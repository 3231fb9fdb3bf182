package repository

import (
	"context"
	"errors"
	"fmt"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	FindAllActive(ctx context.Context) ([]*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
}

type planRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlanRepository(db database.PgxIface, log *zap.Logger) PlanRepository {
	return &planRepository{
		db:  db,
		log: log.With(zap.String("repository", "plan")),
	}
}

func (r *planRepository) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (id, slug, name, description, price, currency, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.Slug,
		plan.Name,
		plan.Description,
		plan.Price,
		plan.Currency,
		plan.IsActive,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if database.IsUniqueViolation(err) {
		return fmt.Errorf("create plan %s: %w", plan.Slug, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create plan",
			zap.Error(err),
			zap.String("slug", plan.Slug),
		)
		return fmt.Errorf("create plan %s: %w", plan.Slug, err)
	}

	return nil
}

func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	query := `
		SELECT id, slug, name, description, price, currency, is_active, created_at, updated_at
		FROM plans
		WHERE id = $1
	`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find plan by ID",
			zap.Error(err),
			zap.String("plan_id", id.String()),
		)
		return nil, fmt.Errorf("find plan by ID %s: %w", id.String(), err)
	}

	return plan, nil
}

func (r *planRepository) FindAllActive(ctx context.Context) ([]*entity.Plan, error) {
	query := `
		SELECT id, slug, name, description, price, currency, is_active, created_at, updated_at
		FROM plans
		WHERE is_active = TRUE
		ORDER BY price
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active plans", zap.Error(err))
		return nil, fmt.Errorf("find active plans: %w", err)
	}
	defer rows.Close()

	var plans []*entity.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			r.log.Error("Failed to scan plan row", zap.Error(err))
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan rows: %w", err)
	}

	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *entity.Plan) error {
	query := `
		UPDATE plans
		SET slug = $2, name = $3, description = $4, price = $5,
		    currency = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.Slug,
		plan.Name,
		plan.Description,
		plan.Price,
		plan.Currency,
		plan.IsActive,
		plan.UpdatedAt,
	)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("update plan %s: %w", plan.ID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update plan",
			zap.Error(err),
			zap.String("plan_id", plan.ID.String()),
		)
		return fmt.Errorf("update plan %s: %w", plan.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("plan %s: %w", plan.ID.String(), ErrNotFound)
	}

	return nil
}

func scanPlan(row scanner) (*entity.Plan, error) {
	var plan entity.Plan
	err := row.Scan(
		&plan.ID,
		&plan.Slug,
		&plan.Name,
		&plan.Description,
		&plan.Price,
		&plan.Currency,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
