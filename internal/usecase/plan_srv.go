package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/dto/response"
	"dummy-ticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanService interface {
	ListActive(ctx context.Context) ([]response.PlanResponse, error)
	GetPlan(ctx context.Context, planID string) (*response.PlanResponse, error)
	CreatePlan(ctx context.Context, req *request.CreatePlanRequest) (*response.PlanResponse, error)
	UpdatePlan(ctx context.Context, planID string, req *request.UpdatePlanRequest) (*response.PlanResponse, error)
}

type planService struct {
	plans repository.PlanRepository
	log   *zap.Logger
}

func NewPlanService(plans repository.PlanRepository, log *zap.Logger) PlanService {
	return &planService{
		plans: plans,
		log:   log.With(zap.String("service", "plan")),
	}
}

func (s *planService) ListActive(ctx context.Context) ([]response.PlanResponse, error) {
	plans, err := s.plans.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, response.PlanToResponse(p))
	}
	return out, nil
}

func (s *planService) GetPlan(ctx context.Context, planID string) (*response.PlanResponse, error) {
	plan, err := s.find(ctx, planID)
	if err != nil {
		return nil, err
	}

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) CreatePlan(ctx context.Context, req *request.CreatePlanRequest) (*response.PlanResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	plan := &entity.Plan{
		Slug:        strings.ToLower(req.Slug),
		Name:        req.Name,
		Description: req.Description,
		Price:       utils.RoundMoney(req.Price),
		Currency:    strings.ToUpper(req.Currency),
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	plan.ID = uuid.New()
	plan.Stamp(time.Now())

	if err := s.plans.Create(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("plan %s: %w", plan.Slug, ErrAlreadyExists)
		}
		return nil, err
	}

	s.log.Info("Plan created", zap.String("plan_id", plan.ID.String()), zap.String("slug", plan.Slug))

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) UpdatePlan(ctx context.Context, planID string, req *request.UpdatePlanRequest) (*response.PlanResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	plan, err := s.find(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		plan.Slug = strings.ToLower(*req.Slug)
	}
	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = utils.RoundMoney(*req.Price)
	}
	if req.Currency != nil {
		plan.Currency = strings.ToUpper(*req.Currency)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	plan.UpdatedAt = time.Now()

	if err := s.plans.Update(ctx, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("plan %s: %w", plan.Slug, ErrAlreadyExists)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
		}
		return nil, err
	}

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) find(ctx context.Context, planID string) (*entity.Plan, error) {
	id, err := uuid.Parse(planID)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}

	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	return plan, nil
}
