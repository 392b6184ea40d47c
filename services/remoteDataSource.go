package services

import (
	"context"

	"github.com/iPrayUST/models"
)

// RemoteDataSource is the hosted document store the service mirrors. The
// Firestore implementation lives in firestoreDataSource.go; tests use stubs.
type RemoteDataSource interface {
	FetchAllPrayers(ctx context.Context) ([]models.Prayer, error)
	FetchPrayerCategories(ctx context.Context) ([]models.PrayerCategory, error)
	// FetchSuggestedPrayers returns prayers flagged suggested, ordered by
	// suggestionOrder ascending with unordered entries last.
	FetchSuggestedPrayers(ctx context.Context) ([]models.Prayer, error)
	// FetchUserProfile returns nil (not an error) when the document is absent.
	FetchUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)

	AddBookmark(ctx context.Context, userID string, prayerID string) error
	RemoveBookmark(ctx context.Context, userID string, prayerID string) error
	UpdateUserPreferences(ctx context.Context, userID string, prefs models.UserPreferences) error

	IncrementPrayerCount(ctx context.Context, userID string, prayerID string) error
	FetchPrayerStats(ctx context.Context, userID string) (map[string]int, error)
	AddRecentPrayer(ctx context.Context, userID string, prayerID string) error
	FetchRecentPrayers(ctx context.Context, userID string) ([]string, error)

	FetchVerseOfTheDay(ctx context.Context, date string) (*models.VerseOfTheDay, error)
	// FetchReminderProfiles returns profiles with at least one reminder
	// toggle enabled.
	FetchReminderProfiles(ctx context.Context) ([]models.UserProfile, error)
}
