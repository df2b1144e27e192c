// file: service/campaign_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/repository"

	"github.com/google/uuid"
)

var ErrCampaignNotFound = errors.New("campaign not found")

const campaignCacheTTL = 10 * time.Minute

// CampaignService includes a cache client for the list-heavy read paths.
type CampaignService struct {
	repo  repository.ICampaignRepository
	cache ICacheClient
}

func NewCampaignService(repo repository.ICampaignRepository, cache ICacheClient) *CampaignService {
	return &CampaignService{
		repo:  repo,
		cache: cache,
	}
}

// CreateCampaign creates a new campaign and invalidates the cached listings.
func (s *CampaignService) CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (*model.Campaign, error) {
	campaign := &model.Campaign{
		ID:            uuid.NewString(),
		Title:         req.Title,
		IsTrending:    req.IsTrending,
		IsFeatured:    req.IsFeatured,
		Description:   optional(req.Description),
		CategoryID:    optional(req.CategoryID),
		TemplateURL:   optional(req.TemplateURL),
		CreatorName:   optional(req.CreatorName),
		CreatorAvatar: optional(req.CreatorAvatar),
	}

	if req.PlaceholderConfig != nil {
		raw, err := json.Marshal(req.PlaceholderConfig)
		if err != nil {
			return nil, fmt.Errorf("could not encode placeholder config: %w", err)
		}
		campaign.PlaceholderConfig = raw
	}

	if err := s.repo.CreateCampaign(campaign); err != nil {
		return nil, err
	}

	s.cache.Del(ctx, "campaigns:all", "campaigns:trending", "campaigns:latest")

	return campaign, nil
}

// Default listing sizes, mirrored from the web client's front page. Only the
// default-sized listings are cached so invalidation stays a fixed set of keys.
const (
	DefaultCampaignLimit = 20
	DefaultTrendingLimit = 4
	DefaultLatestLimit   = 6
)

// ListCampaigns lists campaigns, utilizing a cache-aside strategy.
func (s *CampaignService) ListCampaigns(ctx context.Context, limit int) ([]*model.Campaign, error) {
	return s.cachedList(ctx, "campaigns:all", limit, DefaultCampaignLimit, s.repo.GetCampaigns)
}

// TrendingCampaigns returns campaigns flagged as trending, most viewed first.
func (s *CampaignService) TrendingCampaigns(ctx context.Context, limit int) ([]*model.Campaign, error) {
	return s.cachedList(ctx, "campaigns:trending", limit, DefaultTrendingLimit, s.repo.GetTrendingCampaigns)
}

// LatestCampaigns returns the most recently published campaigns.
func (s *CampaignService) LatestCampaigns(ctx context.Context, limit int) ([]*model.Campaign, error) {
	return s.cachedList(ctx, "campaigns:latest", limit, DefaultLatestLimit, s.repo.GetLatestCampaigns)
}

// CampaignsByCategory is not cached; the key space per category is unbounded
// and these listings are far less hot than the front-page ones.
func (s *CampaignService) CampaignsByCategory(categoryID string, limit int) ([]*model.Campaign, error) {
	return s.repo.GetCampaignsByCategory(categoryID, limit)
}

// GetCampaign retrieves a single campaign by id.
func (s *CampaignService) GetCampaign(id string) (*model.Campaign, error) {
	campaign, err := s.repo.GetCampaignByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

// RecordView increments a campaign's view counter.
func (s *CampaignService) RecordView(ctx context.Context, id string) error {
	if err := s.repo.IncrementViewCount(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCampaignNotFound
		}
		return err
	}
	// Trending ordering depends on view counts.
	s.cache.Del(ctx, "campaigns:trending")
	return nil
}

func (s *CampaignService) cachedList(ctx context.Context, cacheKey string, limit, cachedLimit int,
	fetch func(int) ([]*model.Campaign, error)) ([]*model.Campaign, error) {
	if limit != cachedLimit {
		return fetch(limit)
	}

	// 1. Try to get data from the cache.
	cached, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var campaigns []*model.Campaign
		if err := json.Unmarshal([]byte(cached), &campaigns); err == nil {
			return campaigns, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	campaigns, err := fetch(limit)
	if err != nil {
		return nil, err
	}

	// 3. Store the result for future requests.
	data, err := json.Marshal(campaigns)
	if err == nil {
		s.cache.Set(ctx, cacheKey, data, campaignCacheTTL)
	}

	return campaigns, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
