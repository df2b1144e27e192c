package model

import "time"

// GeneratedBanner is a record of a campaign template personalized with a
// user's name and photo.
type GeneratedBanner struct {
	ID                 string    `json:"id"`
	CampaignID         string    `json:"campaignId"`
	UserName           string    `json:"userName"`
	UserPhotoURL       *string   `json:"userPhotoUrl"`
	GeneratedBannerURL *string   `json:"generatedBannerUrl"`
	IsPublic           bool      `json:"isPublic"`
	CreatedAt          time.Time `json:"createdAt"`
}
