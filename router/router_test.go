// file: router/router_test.go

package router_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/devkingori/alika/handler"
	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/repository"
	"github.com/devkingori/alika/router"
	"github.com/devkingori/alika/service"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// --- In-memory fakes ---
//
// The router tests exercise the full request pipeline (routing, middleware,
// handlers, services) against in-memory stores, so they run without Postgres
// or Redis.

type fakeUserRepo struct {
	users map[string]*model.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) UpdateRefreshToken(userID string, token *string, expiresAt *time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	user.RefreshToken = token
	user.RefreshTokenExpiresAt = expiresAt
	return nil
}

func (f *fakeUserRepo) UpdateProfileImage(userID string, imageURL string) error {
	user, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	user.ProfileImageURL = &imageURL
	return nil
}

func (f *fakeUserRepo) GetAllUsers() ([]*model.User, error) {
	var users []*model.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateUserRole(userID string, newRole string) error {
	user, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = model.Role(newRole)
	return nil
}

type fakeCampaignRepo struct {
	campaigns map[string]*model.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[string]*model.Campaign{}}
}

func (f *fakeCampaignRepo) CreateCampaign(campaign *model.Campaign) error {
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt
	f.campaigns[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaignRepo) list(limit int) []*model.Campaign {
	var campaigns []*model.Campaign
	for _, c := range f.campaigns {
		campaigns = append(campaigns, c)
		if len(campaigns) == limit {
			break
		}
	}
	return campaigns
}

func (f *fakeCampaignRepo) GetCampaigns(limit int) ([]*model.Campaign, error) {
	return f.list(limit), nil
}

func (f *fakeCampaignRepo) GetTrendingCampaigns(limit int) ([]*model.Campaign, error) {
	var campaigns []*model.Campaign
	for _, c := range f.campaigns {
		if c.IsTrending {
			campaigns = append(campaigns, c)
		}
	}
	return campaigns, nil
}

func (f *fakeCampaignRepo) GetLatestCampaigns(limit int) ([]*model.Campaign, error) {
	return f.list(limit), nil
}

func (f *fakeCampaignRepo) GetCampaignsByCategory(categoryID string, limit int) ([]*model.Campaign, error) {
	var campaigns []*model.Campaign
	for _, c := range f.campaigns {
		if c.CategoryID != nil && *c.CategoryID == categoryID {
			campaigns = append(campaigns, c)
		}
	}
	return campaigns, nil
}

func (f *fakeCampaignRepo) GetCampaignByID(id string) (*model.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCampaignRepo) IncrementViewCount(id string) error {
	c, ok := f.campaigns[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.ViewCount++
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*model.Category{}}
}

func (f *fakeCategoryRepo) CreateCategory(category *model.Category) error {
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}
	category.CreatedAt = time.Now()
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) GetCategories() ([]*model.Category, error) {
	var categories []*model.Category
	for _, c := range f.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (f *fakeCategoryRepo) GetCategoryByName(name string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeBannerRepo struct {
	banners map[string]*model.GeneratedBanner
}

func newFakeBannerRepo() *fakeBannerRepo {
	return &fakeBannerRepo{banners: map[string]*model.GeneratedBanner{}}
}

func (f *fakeBannerRepo) CreateGeneratedBanner(banner *model.GeneratedBanner) error {
	banner.CreatedAt = time.Now()
	f.banners[banner.ID] = banner
	return nil
}

func (f *fakeBannerRepo) GetPublicBanners(limit int) ([]*model.GeneratedBanner, error) {
	var banners []*model.GeneratedBanner
	for _, b := range f.banners {
		if b.IsPublic {
			banners = append(banners, b)
		}
	}
	return banners, nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if val, ok := f.store[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := f.store[key]; ok {
			delete(f.store, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

// --- Test harness ---

type testEnv struct {
	router      http.Handler
	userRepo    *fakeUserRepo
	authService *service.AuthService
}

func newTestEnv() *testEnv {
	tokenCfg := service.TokenConfig{
		SecretKey:  "router-test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	}

	userRepo := newFakeUserRepo()
	campaignRepo := newFakeCampaignRepo()

	authService := service.NewAuthService(userRepo, tokenCfg)
	campaignService := service.NewCampaignService(campaignRepo, newFakeCache())
	categoryService := service.NewCategoryService(newFakeCategoryRepo())
	bannerService := service.NewBannerService(newFakeBannerRepo(), campaignRepo)
	userService := service.NewUserService(userRepo)

	r := router.NewRouter(
		handler.NewAuthMiddleware(authService),
		handler.NewAuthHandler(authService),
		handler.NewCampaignHandler(campaignService),
		handler.NewCategoryHandler(categoryService),
		handler.NewBannerHandler(bannerService),
		handler.NewUserHandler(userService),
	)

	return &testEnv{router: r, userRepo: userRepo, authService: authService}
}

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func registerUser(t *testing.T, env *testEnv, email, password string) model.AuthResponse {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"confirmPassword":%q,"firstName":"Test","lastName":"User"}`,
		email, password, password)
	rr := env.do(t, "POST", "/api/auth/register", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp model.AuthResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// --- Test suites ---

func TestHealthCheck(t *testing.T) {
	env := newTestEnv()

	rr := env.do(t, "GET", "/health", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"API is healthy and running"}`, rr.Body.String())
}

func TestRegister(t *testing.T) {
	env := newTestEnv()

	t.Run("success returns user summary and token pair", func(t *testing.T) {
		resp := registerUser(t, env, "alice@example.com", "secret1")

		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, model.RoleUser, resp.User.Role)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("duplicate email conflicts and stores exactly one record", func(t *testing.T) {
		body := `{"email":"alice@example.com","password":"secret2","confirmPassword":"secret2","firstName":"A","lastName":"B"}`
		rr := env.do(t, "POST", "/api/auth/register", body, "")

		assert.Equal(t, http.StatusConflict, rr.Code)
		count := 0
		for _, u := range env.userRepo.users {
			if u.Email == "alice@example.com" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("mismatched password confirmation is rejected before the store", func(t *testing.T) {
		body := `{"email":"bob@example.com","password":"secret1","confirmPassword":"different","firstName":"A","lastName":"B"}`
		rr := env.do(t, "POST", "/api/auth/register", body, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		_, err := env.userRepo.GetUserByEmail("bob@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	registered := registerUser(t, env, "carol@example.com", "secret1")

	t.Run("correct credentials", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/auth/login", `{"email":"carol@example.com","password":"secret1"}`, "")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.AuthResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, registered.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		wrong := env.do(t, "POST", "/api/auth/login", `{"email":"carol@example.com","password":"nope-wrong"}`, "")
		unknown := env.do(t, "POST", "/api/auth/login", `{"email":"ghost@example.com","password":"nope-wrong"}`, "")

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
	})
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv()

	// Register alice and walk the full session lifecycle.
	registered := registerUser(t, env, "alice@example.com", "secret1")

	// Login again: same identity, new pair.
	time.Sleep(1100 * time.Millisecond) // token timestamps have second resolution
	rr := env.do(t, "POST", "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var login model.AuthResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	assert.Equal(t, registered.User.ID, login.User.ID)

	t.Run("refresh token from before the latest login is revoked", func(t *testing.T) {
		body := fmt.Sprintf(`{"refreshToken":%q}`, registered.RefreshToken)
		rr := env.do(t, "POST", "/api/auth/refresh", body, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	var refreshedAccess string
	t.Run("current refresh token mints a new access token", func(t *testing.T) {
		body := fmt.Sprintf(`{"refreshToken":%q}`, login.RefreshToken)
		rr := env.do(t, "POST", "/api/auth/refresh", body, "")
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			AccessToken string `json:"access_token"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		refreshedAccess = resp.AccessToken

		claims, err := env.authService.VerifyToken(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, registered.User.ID, claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("me returns the identity behind the token", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/auth/me", "", refreshedAccess)
		assert.Equal(t, http.StatusOK, rr.Code)

		var summary model.UserSummary
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
		assert.Equal(t, "alice@example.com", summary.Email)
	})

	t.Run("profile image update returns the refreshed summary", func(t *testing.T) {
		body := `{"profileImageUrl":"https://cdn.example.com/avatars/alice.png"}`
		rr := env.do(t, "PUT", "/api/auth/profile-image", body, login.AccessToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		var summary model.UserSummary
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
		if assert.NotNil(t, summary.ProfileImageURL) {
			assert.Equal(t, "https://cdn.example.com/avatars/alice.png", *summary.ProfileImageURL)
		}
	})

	t.Run("logout revokes the refresh token but not the access token", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/auth/logout", "", login.AccessToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		// Refresh is cut off immediately.
		body := fmt.Sprintf(`{"refreshToken":%q}`, login.RefreshToken)
		rr = env.do(t, "POST", "/api/auth/refresh", body, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		// The outstanding access token stays valid until its own expiry.
		rr = env.do(t, "GET", "/api/auth/me", "", login.AccessToken)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRoleGatedRoutes(t *testing.T) {
	env := newTestEnv()
	registered := registerUser(t, env, "dave@example.com", "secret1")

	categoryBody := `{"name":"Festivals","description":"Festival banners","iconClass":"fa-music"}`

	t.Run("standard user is forbidden, not unauthenticated", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/categories", categoryBody, registered.AccessToken)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("anonymous caller is unauthenticated", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/categories", categoryBody, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	// Promote dave and log in again so the new role lands in the claims.
	assert.NoError(t, env.userRepo.UpdateUserRole(registered.User.ID, string(model.RoleAdmin)))
	rr := env.do(t, "POST", "/api/auth/login", `{"email":"dave@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var admin model.AuthResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &admin))

	t.Run("admin can create catalog entries and manage users", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/categories", categoryBody, admin.AccessToken)
		assert.Equal(t, http.StatusCreated, rr.Code)

		rr = env.do(t, "GET", "/api/admin/users", "", admin.AccessToken)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestCampaignAndBannerFlow(t *testing.T) {
	env := newTestEnv()

	// Seed an admin through the public API, then promote.
	registered := registerUser(t, env, "erin@example.com", "secret1")
	assert.NoError(t, env.userRepo.UpdateUserRole(registered.User.ID, string(model.RoleAdmin)))
	rr := env.do(t, "POST", "/api/auth/login", `{"email":"erin@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var admin model.AuthResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &admin))

	campaignBody := `{
		"title": "New Year Countdown",
		"categoryId": "11111111-2222-4333-8444-555555555555",
		"templateUrl": "https://cdn.example.com/templates/newyear.svg",
		"creatorName": "Events Team",
		"isTrending": true
	}`
	rr = env.do(t, "POST", "/api/campaigns", campaignBody, admin.AccessToken)
	assert.Equal(t, http.StatusCreated, rr.Code)
	var campaign model.Campaign
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &campaign))
	assert.NotEmpty(t, campaign.ID)

	t.Run("public listings", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/campaigns", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)

		var campaigns []model.Campaign
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &campaigns))
		assert.Len(t, campaigns, 1)

		rr = env.do(t, "GET", "/api/campaigns/trending", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = env.do(t, "GET", "/api/campaigns/"+campaign.ID, "", "")
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = env.do(t, "GET", "/api/campaigns/00000000-0000-4000-8000-000000000000", "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("view counting", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/campaigns/"+campaign.ID+"/view", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("anonymous banner generation", func(t *testing.T) {
		body := `{"userName":"Grace Hopper","isPublic":true}`
		rr := env.do(t, "POST", "/api/campaigns/"+campaign.ID+"/generate", body, "")
		assert.Equal(t, http.StatusCreated, rr.Code)

		var banner model.GeneratedBanner
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &banner))
		assert.Equal(t, "Grace Hopper", banner.UserName)
		assert.Equal(t, campaign.ID, banner.CampaignID)

		rr = env.do(t, "GET", "/api/banners/public", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		var banners []model.GeneratedBanner
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &banners))
		assert.Len(t, banners, 1)
	})

	t.Run("generation against a missing campaign", func(t *testing.T) {
		body := `{"userName":"Nobody"}`
		rr := env.do(t, "POST", "/api/campaigns/00000000-0000-4000-8000-000000000000/generate", body, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
