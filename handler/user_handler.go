package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/devkingori/alika/common"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"
)

// UserHandler holds dependencies for the admin user-management handlers.
type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// ListUsers godoc
// @Summary      List all users
// @Description  Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.UserSummary
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Failure      403  {object}  common.AppError "Insufficient role"
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.service.ListUsers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch users", err)
	}
	writeJSON(w, http.StatusOK, users)
	return nil
}

// UpdateProfileImage godoc
// @Summary      Update the caller's profile image
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        image body model.UpdateProfileImageRequest true "Image URL"
// @Success      200  {object}  model.UserSummary
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Failure      404  {object}  common.AppError "User deleted since token issuance"
// @Router       /api/auth/profile-image [put]
func (h *UserHandler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var req model.UpdateProfileImageRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	summary, err := h.service.UpdateProfileImage(claims.UserID, req.ProfileImageURL)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update profile image", err)
		}
	}

	writeJSON(w, http.StatusOK, summary)
	return nil
}

// UpdateUserRole godoc
// @Summary      Update a user's role
// @Description  Admin only.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        role body model.UpdateUserRoleRequest true "New role"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Failure      403  {object}  common.AppError "Insufficient role"
// @Failure      404  {object}  common.AppError "User not found"
// @Router       /api/admin/users/{id}/role [put]
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateUserRoleRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	if err := h.service.UpdateUserRole(r.PathValue("id"), req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update user role", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
	return nil
}
