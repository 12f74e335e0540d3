package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/http/response"
	"github.com/Waynenyarky/capstone-booking/pkg/auth"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireRole parses the bearer token and admits only the named roles. The
// resolved identity is placed in the request context for the handlers.
func RequireRole(secret string, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "missing bearer token")
				return
			}
			claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				response.Unauthorized(w, "invalid token")
				return
			}
			if len(allowed) > 0 && !allowed[claims.Role] {
				response.Forbidden(w, "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, domain.Identity{
				UserID: claims.Sub,
				Email:  claims.Email,
			})
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
