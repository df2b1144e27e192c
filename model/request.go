// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// Password/confirmPassword equality is checked here, at the schema layer,
// before the auth service is ever invoked.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest carries the refresh token used to mint a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateUserRoleRequest defines the payload for updating a user's role.
// Using a dedicated struct instead of an inline anonymous struct in the handler
// improves code clarity, reusability, and compatibility with tooling like swag.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin moderator user"`
}

// UpdateProfileImageRequest defines the payload for changing the caller's
// profile image.
type UpdateProfileImageRequest struct {
	ProfileImageURL string `json:"profileImageUrl" validate:"required,url"`
}

// CreateCategoryRequest defines the payload for creating a banner category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	IconClass   string `json:"iconClass" validate:"max=100"`
}

// CreateCampaignRequest defines the payload for publishing a campaign template.
type CreateCampaignRequest struct {
	Title             string                 `json:"title" validate:"required,max=255"`
	Description       string                 `json:"description"`
	CategoryID        string                 `json:"categoryId" validate:"required,uuid4"`
	TemplateURL       string                 `json:"templateUrl" validate:"required,url"`
	CreatorName       string                 `json:"creatorName" validate:"max=255"`
	CreatorAvatar     string                 `json:"creatorAvatar" validate:"omitempty,url"`
	IsTrending        bool                   `json:"isTrending"`
	IsFeatured        bool                   `json:"isFeatured"`
	PlaceholderConfig map[string]interface{} `json:"placeholderConfig"`
}

// GenerateBannerRequest defines the payload for personalizing a campaign
// template with a user's name and photo.
type GenerateBannerRequest struct {
	UserName     string `json:"userName" validate:"required"`
	UserPhotoURL string `json:"userPhotoUrl" validate:"omitempty,url"`
	IsPublic     bool   `json:"isPublic"`
}
