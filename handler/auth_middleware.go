package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/devkingori/alika/common"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// AccessTokenCookie is the alternate transport for the access token. Browser
// clients that cannot attach an Authorization header present the same signed
// token as a cookie; the claims and their verification are identical.
const AccessTokenCookie = "access_token"

// AuthMiddleware gates requests on a verified access token. Verification is
// stateless: the token service checks signature and expiry only, so each
// request is handled independently of every other in-flight request.
type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// ClaimsFromContext returns the verified claims attached by RequireAuth or
// OptionalAuth, if any.
func ClaimsFromContext(ctx context.Context) (*model.AppClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*model.AppClaims)
	return claims, ok
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the access-token cookie. An empty string means no token was
// presented at all.
func extractToken(r *http.Request) (string, *common.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			return "", common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
		}
		return headerParts[1], nil
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", nil
}

// verifyRequest runs the per-request state machine: extract, verify, require
// an access-kind token. It returns the claims or the terminal failure.
func (m *AuthMiddleware) verifyRequest(r *http.Request) (*model.AppClaims, *common.AppError) {
	tokenString, appErr := extractToken(r)
	if appErr != nil {
		return nil, appErr
	}
	if tokenString == "" {
		return nil, common.NewAppError(http.StatusUnauthorized, "Access token required", nil)
	}

	claims, err := m.auth.VerifyToken(tokenString)
	if err != nil {
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err)
	}
	if claims.TokenType != model.TokenTypeAccess {
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
	}

	return claims, nil
}

// RequireAuth rejects the request with 401 unless it carries a valid access
// token. On success the decoded claims are attached to the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, appErr := m.verifyRequest(r)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches claims when a valid access token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, appErr := m.verifyRequest(r); appErr == nil {
			r = r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole composes after RequireAuth and rejects with 403 unless the
// authenticated user's role is in the permitted set. The response names the
// required roles and the caller's own role.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				appErr := common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
				appErr.Send(w)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			message := fmt.Sprintf("Insufficient permissions: requires one of %v, current role is %q", roles, claims.Role)
			appErr := common.NewAppError(http.StatusForbidden, message, nil)
			appErr.Send(w)
		})
	}
}
