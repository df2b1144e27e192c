package service

import (
	"database/sql"
	"errors"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BannerService records personalized banners generated from campaign
// templates. The actual image rendering happens on the client; this service
// owns the durable record of each generation.
type BannerService struct {
	bannerRepo   repository.IBannerRepository
	campaignRepo repository.ICampaignRepository
}

func NewBannerService(bannerRepo repository.IBannerRepository, campaignRepo repository.ICampaignRepository) *BannerService {
	return &BannerService{
		bannerRepo:   bannerRepo,
		campaignRepo: campaignRepo,
	}
}

// GenerateBanner validates the target campaign and records the personalized
// banner. GeneratedBannerURL stays empty until the client uploads a rendered
// copy.
func (s *BannerService) GenerateBanner(campaignID string, req model.GenerateBannerRequest) (*model.GeneratedBanner, error) {
	campaign, err := s.campaignRepo.GetCampaignByID(campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	banner := &model.GeneratedBanner{
		ID:           uuid.NewString(),
		CampaignID:   campaign.ID,
		UserName:     req.UserName,
		UserPhotoURL: optional(req.UserPhotoURL),
		IsPublic:     req.IsPublic,
	}

	if err := s.bannerRepo.CreateGeneratedBanner(banner); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"banner_id":   banner.ID,
		"is_public":   banner.IsPublic,
	}).Info("Generated banner recorded")

	return banner, nil
}

// PublicBanners lists banners their creators chose to share publicly.
func (s *BannerService) PublicBanners(limit int) ([]*model.GeneratedBanner, error) {
	return s.bannerRepo.GetPublicBanners(limit)
}
