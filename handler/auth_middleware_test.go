// file: handler/auth_middleware_test.go

package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestAuthService() *service.AuthService {
	// Verification never touches the repository, so nil is fine here.
	return service.NewAuthService(nil, service.TokenConfig{
		SecretKey:  "middleware-test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
}

func issueTokens(t *testing.T, authService *service.AuthService, role model.Role) *model.TokenPair {
	t.Helper()
	pair, _, err := authService.GenerateTokenPair(&model.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  role,
	})
	assert.NoError(t, err)
	return pair
}

// claimsEcho is a terminal handler that reports whether claims were attached.
func claimsEcho(t *testing.T, gotClaims **model.AppClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			*gotClaims = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	authService := newTestAuthService()
	mw := NewAuthMiddleware(authService)
	pair := issueTokens(t, authService, model.RoleUser)

	t.Run("missing token", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)

		mw.RequireAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, claims)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")

		mw.RequireAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid bearer token attaches claims", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		mw.RequireAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		if assert.NotNil(t, claims) {
			assert.Equal(t, "user-1", claims.UserID)
			assert.Equal(t, model.RoleUser, claims.Role)
		}
	})

	t.Run("cookie transport carries the same token", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: pair.AccessToken})

		mw.RequireAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, claims)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)

		mw.RequireAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, claims)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherService := service.NewAuthService(nil, service.TokenConfig{
			SecretKey: "some-other-secret",
			AccessTTL: 30 * time.Minute,
		})
		foreign := issueTokens(t, otherService, model.RoleUser)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+foreign.AccessToken)

		var claims *model.AppClaims
		mw.RequireAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	authService := newTestAuthService()
	mw := NewAuthMiddleware(authService)

	t.Run("anonymous request proceeds without claims", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/open", nil)

		mw.OptionalAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, claims)
	})

	t.Run("invalid token proceeds without claims", func(t *testing.T) {
		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		mw.OptionalAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, claims)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		pair := issueTokens(t, authService, model.RoleUser)

		var claims *model.AppClaims
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		mw.OptionalAuth(claimsEcho(t, &claims)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, claims)
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	authService := newTestAuthService()
	mw := NewAuthMiddleware(authService)

	protected := func() http.Handler {
		var claims *model.AppClaims
		return mw.RequireAuth(mw.RequireRole(model.RoleAdmin, model.RoleModerator)(claimsEcho(t, &claims)))
	}

	t.Run("insufficient role is forbidden, not unauthenticated", func(t *testing.T) {
		pair := issueTokens(t, authService, model.RoleUser)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		protected().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		// The failure message states required roles and the caller's own role.
		assert.Contains(t, rr.Body.String(), "admin")
		assert.Contains(t, rr.Body.String(), "user")
	})

	t.Run("permitted role proceeds", func(t *testing.T) {
		pair := issueTokens(t, authService, model.RoleModerator)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		protected().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token on a role-gated route is unauthenticated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)

		protected().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
