package services

import (
	"context"
	"errors"
	"sync"

	"github.com/iPrayUST/models"
)

// fakeKV is an in-memory KV for exercising the cache and device stores
// without a database.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	value, found := f.data[key]
	return value, found, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.data, key)
	return nil
}

func (f *fakeKV) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, found := f.data[key]
	return found
}

var errRemoteDown = errors.New("remote unavailable")

// stubRemote implements RemoteDataSource with overridable behavior; every
// call not configured fails, which matches the offline test scenarios.
type stubRemote struct {
	prayers   []models.Prayer
	suggested []models.Prayer
	profile   *models.UserProfile
	verse     *models.VerseOfTheDay
	reminders []models.UserProfile
	fail      bool

	fetchCalls chan string
}

func (s *stubRemote) called(name string) {
	if s.fetchCalls != nil {
		s.fetchCalls <- name
	}
}

func (s *stubRemote) FetchAllPrayers(context.Context) ([]models.Prayer, error) {
	s.called("prayers")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.prayers, nil
}

func (s *stubRemote) FetchPrayerCategories(context.Context) ([]models.PrayerCategory, error) {
	if s.fail {
		return nil, errRemoteDown
	}
	return nil, nil
}

func (s *stubRemote) FetchSuggestedPrayers(context.Context) ([]models.Prayer, error) {
	s.called("suggested")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.suggested, nil
}

func (s *stubRemote) FetchUserProfile(context.Context, string) (*models.UserProfile, error) {
	s.called("profile")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.profile, nil
}

func (s *stubRemote) AddBookmark(context.Context, string, string) error {
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) RemoveBookmark(context.Context, string, string) error {
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) UpdateUserPreferences(context.Context, string, models.UserPreferences) error {
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) IncrementPrayerCount(context.Context, string, string) error {
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) FetchPrayerStats(context.Context, string) (map[string]int, error) {
	if s.fail {
		return nil, errRemoteDown
	}
	return map[string]int{}, nil
}

func (s *stubRemote) AddRecentPrayer(context.Context, string, string) error {
	if s.fail {
		return errRemoteDown
	}
	return nil
}

func (s *stubRemote) FetchRecentPrayers(context.Context, string) ([]string, error) {
	if s.fail {
		return nil, errRemoteDown
	}
	return []string{}, nil
}

func (s *stubRemote) FetchVerseOfTheDay(context.Context, string) (*models.VerseOfTheDay, error) {
	s.called("verse")
	if s.fail {
		return nil, errRemoteDown
	}
	return s.verse, nil
}

func (s *stubRemote) FetchReminderProfiles(context.Context) ([]models.UserProfile, error) {
	if s.fail {
		return nil, errRemoteDown
	}
	return s.reminders, nil
}

func testPrayer(id string, category string) models.Prayer {
	return models.Prayer{
		Prayer_ID: id,
		Title:     "Prayer " + id,
		Content:   "Lord, hear our prayer.",
		Category:  category,
	}
}
