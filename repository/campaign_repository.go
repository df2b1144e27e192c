package repository

import (
	"database/sql"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
)

// ICampaignRepository defines the contract for campaign persistence.
type ICampaignRepository interface {
	CreateCampaign(campaign *model.Campaign) error
	GetCampaigns(limit int) ([]*model.Campaign, error)
	GetTrendingCampaigns(limit int) ([]*model.Campaign, error)
	GetLatestCampaigns(limit int) ([]*model.Campaign, error)
	GetCampaignsByCategory(categoryID string, limit int) ([]*model.Campaign, error)
	GetCampaignByID(id string) (*model.Campaign, error)
	IncrementViewCount(id string) error
}

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

const campaignColumns = `id, title, description, category_id, template_url, creator_name,
	creator_avatar, view_count, download_count, is_trending, is_featured, placeholder_config,
	created_at, updated_at`

func scanCampaignRows(rows *sql.Rows) ([]*model.Campaign, error) {
	defer rows.Close()
	var campaigns []*model.Campaign
	for rows.Next() {
		c := &model.Campaign{}
		err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CategoryID, &c.TemplateURL,
			&c.CreatorName, &c.CreatorAvatar, &c.ViewCount, &c.DownloadCount,
			&c.IsTrending, &c.IsFeatured, &c.PlaceholderConfig, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) CreateCampaign(campaign *model.Campaign) error {
	query := `INSERT INTO campaigns (id, title, description, category_id, template_url,
		creator_name, creator_avatar, is_trending, is_featured, placeholder_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, campaign.ID, campaign.Title, campaign.Description,
		campaign.CategoryID, campaign.TemplateURL, campaign.CreatorName, campaign.CreatorAvatar,
		campaign.IsTrending, campaign.IsFeatured, campaign.PlaceholderConfig).
		Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute create campaign query")
		return err
	}
	return nil
}

func (r *CampaignRepository) GetCampaigns(limit int) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get campaigns query")
		return nil, err
	}
	return scanCampaignRows(rows)
}

func (r *CampaignRepository) GetTrendingCampaigns(limit int) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE is_trending = TRUE
		ORDER BY view_count DESC LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get trending campaigns query")
		return nil, err
	}
	return scanCampaignRows(rows)
}

func (r *CampaignRepository) GetLatestCampaigns(limit int) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get latest campaigns query")
		return nil, err
	}
	return scanCampaignRows(rows)
}

func (r *CampaignRepository) GetCampaignsByCategory(categoryID string, limit int) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE category_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.DB.Query(query, categoryID, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get campaigns by category query")
		return nil, err
	}
	return scanCampaignRows(rows)
}

func (r *CampaignRepository) GetCampaignByID(id string) (*model.Campaign, error) {
	c := &model.Campaign{}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Title, &c.Description, &c.CategoryID,
		&c.TemplateURL, &c.CreatorName, &c.CreatorAvatar, &c.ViewCount, &c.DownloadCount,
		&c.IsTrending, &c.IsFeatured, &c.PlaceholderConfig, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get campaign by id query")
		}
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) IncrementViewCount(id string) error {
	query := `UPDATE campaigns SET view_count = view_count + 1 WHERE id = $1`
	result, err := r.DB.Exec(query, id)
	if err != nil {
		logger.Log.WithError(err).WithField("campaign_id", id).Error("Failed to execute increment view count query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
