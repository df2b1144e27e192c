package model

import (
	"encoding/json"
	"time"
)

type Campaign struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	CategoryID        *string         `json:"categoryId"`
	TemplateURL       *string         `json:"templateUrl"`
	CreatorName       *string         `json:"creatorName"`
	CreatorAvatar     *string         `json:"creatorAvatar"`
	ViewCount         int             `json:"viewCount"`
	DownloadCount     int             `json:"downloadCount"`
	IsTrending        bool            `json:"isTrending"`
	IsFeatured        bool            `json:"isFeatured"`
	PlaceholderConfig json.RawMessage `json:"placeholderConfig,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
