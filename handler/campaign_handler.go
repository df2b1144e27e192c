package handler

import (
	"net/http"
	"strconv"

	"github.com/devkingori/alika/common"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"
)

// CampaignHandler holds dependencies for campaign-related handlers.
type CampaignHandler struct {
	service *service.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler with its dependencies.
func NewCampaignHandler(s *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: s}
}

func limitQuery(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}

// List godoc
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Param        limit query int false "Maximum number of campaigns" default(20)
// @Success      200  {array}  model.Campaign
// @Router       /api/campaigns [get]
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	campaigns, err := h.service.ListCampaigns(r.Context(), limitQuery(r, service.DefaultCampaignLimit))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch campaigns", err)
	}
	writeJSON(w, http.StatusOK, campaigns)
	return nil
}

// Trending godoc
// @Summary      List trending campaigns
// @Tags         campaigns
// @Produce      json
// @Param        limit query int false "Maximum number of campaigns" default(4)
// @Success      200  {array}  model.Campaign
// @Router       /api/campaigns/trending [get]
func (h *CampaignHandler) Trending(w http.ResponseWriter, r *http.Request) *common.AppError {
	campaigns, err := h.service.TrendingCampaigns(r.Context(), limitQuery(r, service.DefaultTrendingLimit))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch trending campaigns", err)
	}
	writeJSON(w, http.StatusOK, campaigns)
	return nil
}

// Latest godoc
// @Summary      List latest campaigns
// @Tags         campaigns
// @Produce      json
// @Param        limit query int false "Maximum number of campaigns" default(6)
// @Success      200  {array}  model.Campaign
// @Router       /api/campaigns/latest [get]
func (h *CampaignHandler) Latest(w http.ResponseWriter, r *http.Request) *common.AppError {
	campaigns, err := h.service.LatestCampaigns(r.Context(), limitQuery(r, service.DefaultLatestLimit))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch latest campaigns", err)
	}
	writeJSON(w, http.StatusOK, campaigns)
	return nil
}

// ByCategory godoc
// @Summary      List campaigns in a category
// @Tags         campaigns
// @Produce      json
// @Param        categoryId path string true "Category ID"
// @Param        limit query int false "Maximum number of campaigns" default(20)
// @Success      200  {array}  model.Campaign
// @Router       /api/campaigns/category/{categoryId} [get]
func (h *CampaignHandler) ByCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	categoryID := r.PathValue("categoryId")
	campaigns, err := h.service.CampaignsByCategory(categoryID, limitQuery(r, service.DefaultCampaignLimit))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch campaigns", err)
	}
	writeJSON(w, http.StatusOK, campaigns)
	return nil
}

// Get godoc
// @Summary      Get a campaign by id
// @Tags         campaigns
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  model.Campaign
// @Failure      404  {object}  common.AppError "Campaign not found"
// @Router       /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	campaign, err := h.service.GetCampaign(r.PathValue("id"))
	if err != nil {
		switch err {
		case service.ErrCampaignNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Failed to fetch campaign", err)
		}
	}
	writeJSON(w, http.StatusOK, campaign)
	return nil
}

// RecordView godoc
// @Summary      Record a campaign view
// @Tags         campaigns
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError "Campaign not found"
// @Router       /api/campaigns/{id}/view [post]
func (h *CampaignHandler) RecordView(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := h.service.RecordView(r.Context(), r.PathValue("id")); err != nil {
		switch err {
		case service.ErrCampaignNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Failed to record view", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "View recorded"})
	return nil
}

// Create godoc
// @Summary      Publish a campaign template
// @Description  Moderator or admin only.
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        campaign body model.CreateCampaignRequest true "Campaign payload"
// @Success      201  {object}  model.Campaign
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      401  {object}  common.AppError "Missing or invalid access token"
// @Failure      403  {object}  common.AppError "Insufficient role"
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateCampaignRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	campaign, err := h.service.CreateCampaign(r.Context(), req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create campaign", err)
	}

	writeJSON(w, http.StatusCreated, campaign)
	return nil
}
