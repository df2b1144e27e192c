// file: model/token.go

package model

// TokenPair is the pair of signed tokens returned by login and registration.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the payload returned by login and registration: the user
// summary plus a fresh token pair.
type AuthResponse struct {
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}
