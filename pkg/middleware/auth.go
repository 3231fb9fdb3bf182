package middleware

import (
	"context"
	"net/http"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the session owner.
// It returns (nil, nil) for unknown or expired tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.SessionPrincipal, error)
}

// AuthSession rejects requests without a valid session token.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := utils.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization token")
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if principal == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal, token)))
		})
	}
}

// OptionalAuth attaches the session owner when a valid token is sent and
// otherwise lets the request through as a guest.
func OptionalAuth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := utils.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn("Session lookup failed, continuing as guest", zap.Error(err))
			}
			if principal == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal, token)))
		})
	}
}

// Admin requires AuthSession to have run first.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withPrincipal(ctx context.Context, principal *entity.SessionPrincipal, token string) context.Context {
	ctx = utils.SetUserContext(ctx, principal.UserID, string(principal.Role))
	return utils.SetTokenContext(ctx, token)
}
