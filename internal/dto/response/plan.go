package response

import "dummy-ticket/internal/data/entity"

type PlanResponse struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	IsActive    bool    `json:"is_active"`
}

func PlanToResponse(plan *entity.Plan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID.String(),
		Slug:        plan.Slug,
		Name:        plan.Name,
		Description: plan.Description,
		Price:       plan.Price,
		Currency:    plan.Currency,
		IsActive:    plan.IsActive,
	}
}
