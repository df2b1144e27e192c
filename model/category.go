package model

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IconClass   *string   `json:"iconClass"`
	BannerCount int       `json:"bannerCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
