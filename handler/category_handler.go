package handler

import (
	"net/http"

	"github.com/devkingori/alika/common"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"
)

// CategoryHandler holds dependencies for category-related handlers.
type CategoryHandler struct {
	service *service.CategoryService
}

func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// List godoc
// @Summary      List banner categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  model.Category
// @Router       /api/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	categories, err := h.service.ListCategories()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch categories", err)
	}
	writeJSON(w, http.StatusOK, categories)
	return nil
}

// Create godoc
// @Summary      Create a banner category
// @Description  Moderator or admin only.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        category body model.CreateCategoryRequest true "Category payload"
// @Success      201  {object}  model.Category
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Failure      403  {object}  common.AppError "Insufficient role"
// @Failure      409  {object}  common.AppError "Category name already exists"
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateCategoryRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(req)
	if err != nil {
		switch err {
		case service.ErrDuplicateCategory:
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create category", err)
		}
	}

	writeJSON(w, http.StatusCreated, category)
	return nil
}
