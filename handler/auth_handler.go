package handler

import (
	"encoding/json"
	"net/http"

	"github.com/devkingori/alika/common"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with its dependencies.
func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account and returns the user summary with a fresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registration body model.RegisterRequest true "Registration payload"
// @Success      201  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Invalid payload or passwords do not match"
// @Failure      409  {object}  common.AppError "Email already registered"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Register(req)
	if err != nil {
		switch err {
		case service.ErrDuplicateEmail:
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
		}
	}

	writeJSON(w, http.StatusCreated, resp)
	return nil
}

// Login godoc
// @Summary      Authenticate a user
// @Description  Verifies credentials and returns the user summary with a fresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login payload"
// @Success      200  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      401  {object}  common.AppError "Invalid email or password"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Login(req)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

// Refresh godoc
// @Summary      Refresh the access token
// @Description  Verifies the refresh token against the persisted value and mints a new access token. The refresh token itself is not rotated.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refresh body model.RefreshRequest true "Refresh payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      401  {object}  common.AppError "Invalid, expired or revoked refresh token"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	accessToken, err := h.service.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		switch err {
		case service.ErrInvalidToken, service.ErrRevokedToken:
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
	return nil
}

// Logout godoc
// @Summary      Log out the current user
// @Description  Clears the persisted refresh token, revoking future refresh attempts. Outstanding access tokens stay valid until their own expiry.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	// Best-effort: the client discards its tokens regardless of whether the
	// persistence write succeeds.
	h.service.Logout(claims.UserID)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
	return nil
}

// Me godoc
// @Summary      Get the current user
// @Description  Returns the authenticated user's summary.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.UserSummary
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Failure      404  {object}  common.AppError "User deleted since token issuance"
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	summary, err := h.service.CurrentUser(claims.UserID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Failed to get user information", err)
		}
	}

	writeJSON(w, http.StatusOK, summary)
	return nil
}
