package handler

import (
	"net/http"

	"github.com/devkingori/alika/common"
	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/service"
)

// BannerHandler holds dependencies for generated-banner handlers.
type BannerHandler struct {
	service *service.BannerService
}

func NewBannerHandler(s *service.BannerService) *BannerHandler {
	return &BannerHandler{service: s}
}

// Generate godoc
// @Summary      Personalize a campaign template
// @Description  Records a banner generated from the campaign template with the given name and photo. Works for anonymous users; authenticated generations are logged against the user.
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        banner body model.GenerateBannerRequest true "Personalization payload"
// @Success      201  {object}  model.GeneratedBanner
// @Failure      400  {object}  common.AppError "Invalid payload"
// @Failure      404  {object}  common.AppError "Campaign not found"
// @Router       /api/campaigns/{id}/generate [post]
func (h *BannerHandler) Generate(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GenerateBannerRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	banner, err := h.service.GenerateBanner(r.PathValue("id"), req)
	if err != nil {
		switch err {
		case service.ErrCampaignNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not generate banner", err)
		}
	}

	// Auth is optional on this route; tie the generation to the user when
	// claims are present.
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		logger.Log.WithField("user_id", claims.UserID).Info("Banner generated by authenticated user")
	}

	writeJSON(w, http.StatusCreated, banner)
	return nil
}

// PublicBanners godoc
// @Summary      List publicly shared banners
// @Tags         banners
// @Produce      json
// @Param        limit query int false "Maximum number of banners" default(10)
// @Success      200  {array}  model.GeneratedBanner
// @Router       /api/banners/public [get]
func (h *BannerHandler) PublicBanners(w http.ResponseWriter, r *http.Request) *common.AppError {
	banners, err := h.service.PublicBanners(limitQuery(r, 10))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch public banners", err)
	}
	writeJSON(w, http.StatusOK, banners)
	return nil
}
