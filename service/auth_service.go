package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrRevokedToken       = errors.New("refresh token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

// bcryptCost trades login latency for resistance to offline brute force.
const bcryptCost = 12

// TokenConfig carries the signing secret and token lifetimes. It is injected
// at construction so the secret is never read from a process-wide global.
type TokenConfig struct {
	SecretKey  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService owns credential verification and the access/refresh token
// lifecycle. Token verification is stateless; only the persisted refresh
// token on the user row is consulted, and only during refresh.
type AuthService struct {
	userRepo repository.IUserRepository
	cfg      TokenConfig
}

func NewAuthService(userRepo repository.IUserRepository, cfg TokenConfig) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *AuthService) signToken(user *model.User, tokenType string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	claims := &model.AppClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign JWT")
		return "", time.Time{}, fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, expiresAt, nil
}

// GenerateTokenPair issues a fresh access/refresh token pair for the user.
// The returned time is the refresh token's expiry, which callers persist
// alongside the token value.
func (s *AuthService) GenerateTokenPair(user *model.User) (*model.TokenPair, time.Time, error) {
	accessToken, _, err := s.signToken(user, model.TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, time.Time{}, err
	}

	refreshToken, refreshExpiresAt, err := s.signToken(user, model.TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, time.Time{}, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, refreshExpiresAt, nil
}

// VerifyToken checks signature integrity and expiry. It is a purely
// cryptographic check; the credential store is never consulted here.
func (s *AuthService) VerifyToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Register creates a new user and issues its first token pair. The
// password/confirmPassword equality check happens at the request-schema layer
// before this method is invoked.
func (s *AuthService) Register(req model.RegisterRequest) (*model.AuthResponse, error) {
	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: &req.FirstName,
		LastName:  &req.LastName,
		Role:      model.RoleUser,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return s.issueSession(user)
}

// Login verifies credentials and issues a new token pair. Unknown email and
// wrong password fail identically so callers cannot enumerate accounts.
func (s *AuthService) Login(req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// issueSession mints a token pair and persists the refresh token, overwriting
// any previous one. Concurrent logins for the same user race last-write-wins;
// the most recent login always owns the only usable refresh token.
func (s *AuthService) issueSession(user *model.User) (*model.AuthResponse, error) {
	pair, refreshExpiresAt, err := s.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, &pair.RefreshToken, &refreshExpiresAt); err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		User:         user.Summary(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// RefreshAccessToken consumes a refresh token and mints a new access token.
// The refresh token itself is not reissued; rotation happens only at login.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.VerifyToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.TokenType != model.TokenTypeRefresh {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrRevokedToken
		}
		return "", err
	}

	// The presented token must exactly match the persisted value; a logout or
	// a newer login overwrites it and cuts off all earlier refresh tokens.
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", ErrRevokedToken
	}
	if user.RefreshTokenExpiresAt == nil || user.RefreshTokenExpiresAt.Before(time.Now()) {
		return "", ErrRevokedToken
	}

	accessToken, _, err := s.signToken(user, model.TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

// Logout clears the persisted refresh token. It is best-effort: a persistence
// failure is logged for operators but not surfaced, since the client discards
// its tokens either way.
func (s *AuthService) Logout(userID string) {
	if err := s.userRepo.UpdateRefreshToken(userID, nil, nil); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to clear refresh token on logout")
	}
}

// CurrentUser loads the user behind a set of verified claims. The user may
// have been deleted since the token was issued.
func (s *AuthService) CurrentUser(userID string) (*model.UserSummary, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}
