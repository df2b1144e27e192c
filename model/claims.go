package model

import "github.com/golang-jwt/jwt/v5"

// Token kind discriminators embedded in the claims. An access token presented
// where a refresh token is expected (or vice versa) is rejected.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type AppClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
