package adaptor

import (
	"context"
	"errors"
	"net/http"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/usecase"
	"dummy-ticket/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors to HTTP responses. Internals are
// logged but never echoed back to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Any("errors", validationErr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrPaymentNotComplete):
		log.Warn(operation+" failed - payment not complete", zap.Error(err))
		utils.ResponseBadRequest(w, "payment not complete", nil)

	case errors.Is(err, usecase.ErrMissingBookingReference):
		log.Error(operation+" failed - session has no booking reference", zap.Error(err))
		utils.ResponseBadRequest(w, "Payment session has no booking reference", nil)

	case errors.Is(err, usecase.ErrInvalidSignature):
		log.Warn(operation+" failed - invalid signature", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid signature", nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Resource not found")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseConflict(w, "Resource already exists")

	case errors.Is(err, usecase.ErrBookingIDConflict):
		log.Error(operation+" failed - booking id conflict", zap.Error(err))
		utils.ResponseConflict(w, "Booking reference already in use")

	case errors.Is(err, usecase.ErrUpstream):
		log.Error(operation+" failed - payment provider", zap.Error(err))
		utils.ResponseBadGateway(w, "Payment provider unavailable")

	case usecase.IsTransient(err), errors.Is(err, context.DeadlineExceeded):
		log.Error(operation+" failed - transient", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, please retry")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "internal error")
	}
}

// principalFromRequest returns nil for guests.
func principalFromRequest(r *http.Request) *entity.SessionPrincipal {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return &entity.SessionPrincipal{UserID: userID, Role: entity.UserRole(role)}
}
