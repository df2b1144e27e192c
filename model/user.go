package model

import "time"

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// User is the persistent identity record. The current refresh token and its
// expiry live on the user row; overwriting them is what revokes the previous
// session (see service.AuthService).
type User struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	Password              string     `json:"-"`
	FirstName             *string    `json:"firstName"`
	LastName              *string    `json:"lastName"`
	Role                  Role       `json:"role"`
	ProfileImageURL       *string    `json:"profileImageUrl"`
	RefreshToken          *string    `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// UserSummary is the representation of a user exposed to API clients.
// It never carries the password hash or refresh-token state.
type UserSummary struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	Role            Role      `json:"role"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Summary builds the client-facing view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}
