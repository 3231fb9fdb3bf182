package usecase

import (
	"context"
	"fmt"
	"testing"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlanService_CreatePlan(t *testing.T) {
	repo := new(MockPlanRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Plan) bool {
		return p.Slug == "flight-one-way" && p.Currency == "USD" && p.Price == 19.99 && p.IsActive
	})).Return(nil)
	svc := NewPlanService(repo, zap.NewNop())

	resp, err := svc.CreatePlan(context.Background(), &request.CreatePlanRequest{
		Slug:     "Flight-One-Way",
		Name:     "One-way flight reservation",
		Price:    19.989,
		Currency: "USD",
	})

	require.NoError(t, err)
	assert.Equal(t, "flight-one-way", resp.Slug)
	assert.Equal(t, 19.99, resp.Price)
	repo.AssertExpectations(t)
}

func TestPlanService_CreatePlanDuplicateSlug(t *testing.T) {
	repo := new(MockPlanRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("create plan: %w", repository.ErrDuplicate))
	svc := NewPlanService(repo, zap.NewNop())

	_, err := svc.CreatePlan(context.Background(), &request.CreatePlanRequest{
		Slug: "hotel", Name: "Hotel booking", Price: 15, Currency: "USD",
	})

	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestPlanService_CreatePlanValidation(t *testing.T) {
	svc := NewPlanService(new(MockPlanRepository), zap.NewNop())

	_, err := svc.CreatePlan(context.Background(), &request.CreatePlanRequest{Slug: "x"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlanService_UpdatePlan(t *testing.T) {
	plan := &entity.Plan{Slug: "hotel", Name: "Hotel", Price: 15, Currency: "USD", IsActive: true}
	plan.ID = uuid.New()

	repo := new(MockPlanRepository)
	repo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	repo.On("Update", mock.Anything, plan).Return(nil)
	svc := NewPlanService(repo, zap.NewNop())

	inactive := false
	price := 12.5
	resp, err := svc.UpdatePlan(context.Background(), plan.ID.String(), &request.UpdatePlanRequest{IsActive: &inactive, Price: &price})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, 12.5, resp.Price)
	assert.Equal(t, "Hotel", resp.Name)
}

func TestPlanService_GetPlanNotFound(t *testing.T) {
	missing := uuid.New()
	repo := new(MockPlanRepository)
	repo.On("FindByID", mock.Anything, missing).Return(nil, nil)
	svc := NewPlanService(repo, zap.NewNop())

	_, err := svc.GetPlan(context.Background(), missing.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPlan(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}
