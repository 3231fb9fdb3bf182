package adaptor

import (
	"encoding/json"
	"net/http"

	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/usecase"
	"dummy-ticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PlanHandler struct {
	service usecase.PlanService
	log     *zap.Logger
}

func NewPlanHandler(service usecase.PlanService, log *zap.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		log:     log.With(zap.String("handler", "plan")),
	}
}

// ListPlans handles GET /api/plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list plans")
		return
	}

	utils.ResponseSuccess(w, "success", plans)
}

// GetPlan handles GET /api/plans/{id}
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get plan")
		return
	}

	utils.ResponseSuccess(w, "success", plan)
}

// CreatePlan handles POST /api/admin/plans
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create plan")
		return
	}

	utils.ResponseCreated(w, "Plan created", plan)
}

// UpdatePlan handles PUT /api/admin/plans/{id}
func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	plan, err := h.service.UpdatePlan(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update plan")
		return
	}

	utils.ResponseSuccess(w, "Plan updated", plan)
}
