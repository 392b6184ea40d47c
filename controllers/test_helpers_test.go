package controllers

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iPrayUST/models"
	"github.com/iPrayUST/services"
)

// SetupTestContext creates a test Gin context with a response recorder. The
// request is always set because every handler reads c.Request.Context().
func SetupTestContext(method string, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

// SetAuthenticatedUser sets the currentUser and admin values in the Gin
// context, simulating what the CheckAuth middleware does.
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile, isAdmin bool) {
	c.Set("currentUser", user)
	c.Set("admin", isAdmin)
}

// memKV is an in-memory services.KV so controller tests run against real
// cache and device-state services without a database.
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

var errRemoteDown = errors.New("remote unavailable")

// stubRemote implements services.RemoteDataSource with canned data; fail
// makes every call error.
type stubRemote struct {
	prayers    []models.Prayer
	categories []models.PrayerCategory
	suggested  []models.Prayer
	profile    *models.UserProfile
	verse      *models.VerseOfTheDay
	recent     []string
	stats      map[string]int
	reminders  []models.UserProfile
	fail       bool

	mu    sync.Mutex
	calls []string
}

func (s *stubRemote) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubRemote) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.calls {
		if call == name {
			count++
		}
	}
	return count
}

func (s *stubRemote) FetchAllPrayers(context.Context) ([]models.Prayer, error) {
	s.record("FetchAllPrayers")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.prayers, nil
}

func (s *stubRemote) FetchPrayerCategories(context.Context) ([]models.PrayerCategory, error) {
	s.record("FetchPrayerCategories")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.categories, nil
}

func (s *stubRemote) FetchSuggestedPrayers(context.Context) ([]models.Prayer, error) {
	s.record("FetchSuggestedPrayers")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.suggested, nil
}

func (s *stubRemote) FetchUserProfile(context.Context, string) (*models.UserProfile, error) {
	s.record("FetchUserProfile")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.profile, nil
}

func (s *stubRemote) AddBookmark(context.Context, string, string) error {
	s.record("AddBookmark")
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) RemoveBookmark(context.Context, string, string) error {
	s.record("RemoveBookmark")
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) UpdateUserPreferences(context.Context, string, models.UserPreferences) error {
	s.record("UpdateUserPreferences")
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) IncrementPrayerCount(context.Context, string, string) error {
	s.record("IncrementPrayerCount")
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) FetchPrayerStats(context.Context, string) (map[string]int, error) {
	s.record("FetchPrayerStats")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.stats, nil
}

func (s *stubRemote) AddRecentPrayer(context.Context, string, string) error {
	s.record("AddRecentPrayer")
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) FetchRecentPrayers(context.Context, string) ([]string, error) {
	s.record("FetchRecentPrayers")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.recent, nil
}

func (s *stubRemote) FetchVerseOfTheDay(context.Context, string) (*models.VerseOfTheDay, error) {
	s.record("FetchVerseOfTheDay")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.verse, nil
}

func (s *stubRemote) FetchReminderProfiles(context.Context) ([]models.UserProfile, error) {
	s.record("FetchReminderProfiles")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.reminders, nil
}

// setupSync wires a SyncCoordinator over an in-memory KV and the given stub.
func setupSync(remote services.RemoteDataSource) (*services.SyncCoordinator, *memKV) {
	kv := newMemKV()
	cache := services.NewCacheStore(kv, "1.0.0", 24*time.Hour)
	return services.NewSyncCoordinator(cache, remote, kv, 2*time.Second), kv
}

func testPrayer(id string, category string) models.Prayer {
	return models.Prayer{
		Prayer_ID: id,
		Title:     "Prayer " + id,
		Content:   "Lord, hear our prayer.",
		Category:  category,
	}
}
