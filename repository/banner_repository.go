package repository

import (
	"database/sql"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
)

// IBannerRepository defines the contract for generated banner persistence.
type IBannerRepository interface {
	CreateGeneratedBanner(banner *model.GeneratedBanner) error
	GetPublicBanners(limit int) ([]*model.GeneratedBanner, error)
}

type BannerRepository struct {
	DB *sql.DB
}

func NewBannerRepository(db *sql.DB) *BannerRepository {
	return &BannerRepository{DB: db}
}

func (r *BannerRepository) CreateGeneratedBanner(banner *model.GeneratedBanner) error {
	query := `INSERT INTO generated_banners (id, campaign_id, user_name, user_photo_url,
		generated_banner_url, is_public) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.DB.QueryRow(query, banner.ID, banner.CampaignID, banner.UserName,
		banner.UserPhotoURL, banner.GeneratedBannerURL, banner.IsPublic).Scan(&banner.CreatedAt)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute create generated banner query")
		return err
	}
	return nil
}

func (r *BannerRepository) GetPublicBanners(limit int) ([]*model.GeneratedBanner, error) {
	query := `SELECT id, campaign_id, user_name, user_photo_url, generated_banner_url,
		is_public, created_at FROM generated_banners WHERE is_public = TRUE
		ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get public banners query")
		return nil, err
	}
	defer rows.Close()

	var banners []*model.GeneratedBanner
	for rows.Next() {
		b := &model.GeneratedBanner{}
		err := rows.Scan(&b.ID, &b.CampaignID, &b.UserName, &b.UserPhotoURL,
			&b.GeneratedBannerURL, &b.IsPublic, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}
