package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iPrayUST/initializers"
	"github.com/iPrayUST/models"
	"github.com/iPrayUST/services"
)

const testSecret = "test-secret-key"

// memKV is an in-memory services.KV for running the sync coordinator without
// a database.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.data[key]
	return value, found, nil
}

func (m *memKV) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// profileRemote serves exactly one profile; every other call is empty.
type profileRemote struct {
	profile *models.UserProfile
}

func (r *profileRemote) FetchAllPrayers(context.Context) ([]models.Prayer, error) {
	return nil, nil
}

func (r *profileRemote) FetchPrayerCategories(context.Context) ([]models.PrayerCategory, error) {
	return nil, nil
}

func (r *profileRemote) FetchSuggestedPrayers(context.Context) ([]models.Prayer, error) {
	return nil, nil
}

func (r *profileRemote) FetchUserProfile(context.Context, string) (*models.UserProfile, error) {
	return r.profile, nil
}

func (r *profileRemote) AddBookmark(context.Context, string, string) error    { return nil }
func (r *profileRemote) RemoveBookmark(context.Context, string, string) error { return nil }

func (r *profileRemote) UpdateUserPreferences(context.Context, string, models.UserPreferences) error {
	return nil
}

func (r *profileRemote) IncrementPrayerCount(context.Context, string, string) error { return nil }

func (r *profileRemote) FetchPrayerStats(context.Context, string) (map[string]int, error) {
	return nil, nil
}

func (r *profileRemote) AddRecentPrayer(context.Context, string, string) error { return nil }

func (r *profileRemote) FetchRecentPrayers(context.Context, string) ([]string, error) {
	return nil, nil
}

func (r *profileRemote) FetchVerseOfTheDay(context.Context, string) (*models.VerseOfTheDay, error) {
	return nil, nil
}

func (r *profileRemote) FetchReminderProfiles(context.Context) ([]models.UserProfile, error) {
	return nil, nil
}

func setupSyncWithProfile(profile *models.UserProfile) *services.SyncCoordinator {
	kv := newMemKV()
	cache := services.NewCacheStore(kv, "1.0.0", 24*time.Hour)
	return services.NewSyncCoordinator(cache, &profileRemote{profile: profile}, kv, 2*time.Second)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func generateToken(userID string, role string, expiresIn time.Duration, secret string) string {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": float64(time.Now().Add(expiresIn).Unix()),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

func TestCheckAuth(t *testing.T) {
	initializers.Cfg.Secret = testSecret

	tests := []struct {
		name              string
		authHeader        string
		profile           *models.UserProfile
		expectedStatus    int
		expectAbort       bool
		expectCurrentUser bool
		expectAdmin       bool
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - no Bearer prefix",
			authHeader:     "InvalidToken123",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - wrong prefix",
			authHeader:     "Basic " + generateToken("u1", "user", 24*time.Hour, testSecret),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid JWT signature",
			authHeader:     "Bearer " + generateToken("u1", "user", 24*time.Hour, "wrong-secret-key"),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + generateToken("u1", "user", -time.Hour, testSecret),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "valid token - profile not found",
			authHeader:     "Bearer " + generateToken("ghost", "user", 24*time.Hour, testSecret),
			profile:        nil,
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:              "valid token - regular user",
			authHeader:        "Bearer " + generateToken("u1", "user", 24*time.Hour, testSecret),
			profile:           &models.UserProfile{User_ID: "u1", Email: "test@example.com"},
			expectedStatus:    http.StatusOK,
			expectCurrentUser: true,
		},
		{
			name:              "valid token - admin user",
			authHeader:        "Bearer " + generateToken("u2", "admin", 24*time.Hour, testSecret),
			profile:           &models.UserProfile{User_ID: "u2", Email: "admin@example.com", Role: "admin"},
			expectedStatus:    http.StatusOK,
			expectCurrentUser: true,
			expectAdmin:       true,
		},
		{
			name:              "valid token - no role claim defaults to non-admin",
			authHeader:        "Bearer " + generateToken("u1", "", 24*time.Hour, testSecret),
			profile:           &models.UserProfile{User_ID: "u1", Email: "test@example.com"},
			expectedStatus:    http.StatusOK,
			expectCurrentUser: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			CheckAuth(setupSyncWithProfile(tt.profile))(c)

			if tt.expectAbort {
				assert.True(t, c.IsAborted(), "Expected request to be aborted")
				assert.Equal(t, tt.expectedStatus, w.Code)
			} else {
				assert.False(t, c.IsAborted(), "Expected request not to be aborted")
			}

			if tt.expectCurrentUser {
				user, exists := c.Get("currentUser")
				assert.True(t, exists, "Expected currentUser to be set")
				userProfile := user.(models.UserProfile)
				assert.Equal(t, tt.profile.User_ID, userProfile.User_ID)
				assert.Equal(t, tt.profile.Email, userProfile.Email)

				admin, adminSet := c.Get("admin")
				assert.True(t, adminSet, "Expected admin flag to be set")
				assert.Equal(t, tt.expectAdmin, admin.(bool))
			} else {
				_, exists := c.Get("currentUser")
				assert.False(t, exists, "Expected currentUser not to be set")
			}
		})
	}
}
