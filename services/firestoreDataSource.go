package services

import (
	"context"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iPrayUST/models"
)

// Prayers missing an explicit suggestionOrder sort after every ordered entry.
const suggestionOrderSentinel = 999

// FirestoreDataSource is the production RemoteDataSource, reading the same
// collections the mobile client was built against: prayers, prayerCategories,
// users, userStats, userRecent, versesOfTheDay.
type FirestoreDataSource struct {
	client *firestore.Client
}

func NewFirestoreDataSource(client *firestore.Client) *FirestoreDataSource {
	return &FirestoreDataSource{client: client}
}

func (f *FirestoreDataSource) FetchAllPrayers(ctx context.Context) ([]models.Prayer, error) {
	return f.collectPrayers(f.client.Collection("prayers").Documents(ctx))
}

func (f *FirestoreDataSource) FetchPrayerCategories(ctx context.Context) ([]models.PrayerCategory, error) {
	iter := f.client.Collection("prayerCategories").Documents(ctx)
	defer iter.Stop()

	var categories []models.PrayerCategory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var category models.PrayerCategory
		if err := doc.DataTo(&category); err != nil {
			log.Println("Skipping malformed category document:", doc.Ref.ID, err)
			continue
		}
		if category.Category_ID == "" {
			category.Category_ID = doc.Ref.ID
		}

		prayers, err := f.collectPrayers(f.client.Collection("prayers").
			Where("category", "==", category.Category_ID).
			Documents(ctx))
		if err != nil {
			return nil, err
		}
		category.Prayers = prayers

		categories = append(categories, category)
	}
	return categories, nil
}

func (f *FirestoreDataSource) FetchSuggestedPrayers(ctx context.Context) ([]models.Prayer, error) {
	prayers, err := f.collectPrayers(f.client.Collection("prayers").
		Where("isSuggested", "==", true).
		Documents(ctx))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(prayers, func(i, j int) bool {
		return suggestionOrder(prayers[i]) < suggestionOrder(prayers[j])
	})
	return prayers, nil
}

func suggestionOrder(p models.Prayer) int {
	if p.Suggestion_Order == nil {
		return suggestionOrderSentinel
	}
	return *p.Suggestion_Order
}

func (f *FirestoreDataSource) FetchUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, nil
	}

	doc, err := f.client.Collection("users").Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, err
	}
	if profile.User_ID == "" {
		profile.User_ID = doc.Ref.ID
	}
	return &profile, nil
}

func (f *FirestoreDataSource) AddBookmark(ctx context.Context, userID string, prayerID string) error {
	if userID == "" || prayerID == "" {
		log.Println("Ignoring bookmark add with empty identifiers")
		return nil
	}

	ref := f.client.Collection("users").Doc(userID)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound || (err == nil && !doc.Exists()) {
		// First write for this user creates the document skeleton.
		_, err = ref.Set(ctx, map[string]interface{}{
			"id":        userID,
			"bookmarks": []string{prayerID},
			"preferences": map[string]interface{}{
				"morningReminder": false,
				"eveningReminder": false,
				"reminderTime":    "08:00",
			},
			"createdAt": firestore.ServerTimestamp,
			"updatedAt": firestore.ServerTimestamp,
		})
		return err
	}
	if err != nil {
		return err
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "bookmarks", Value: firestore.ArrayUnion(prayerID)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return err
}

func (f *FirestoreDataSource) RemoveBookmark(ctx context.Context, userID string, prayerID string) error {
	if userID == "" || prayerID == "" {
		log.Println("Ignoring bookmark remove with empty identifiers")
		return nil
	}

	ref := f.client.Collection("users").Doc(userID)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound || (err == nil && !doc.Exists()) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "bookmarks", Value: firestore.ArrayRemove(prayerID)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return err
}

func (f *FirestoreDataSource) UpdateUserPreferences(ctx context.Context, userID string, prefs models.UserPreferences) error {
	if userID == "" {
		return nil
	}

	_, err := f.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "preferences", Value: prefs},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return err
}

func (f *FirestoreDataSource) IncrementPrayerCount(ctx context.Context, userID string, prayerID string) error {
	if userID == "" || prayerID == "" {
		return nil
	}

	ref := f.client.Collection("userStats").Doc(userID)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound || (err == nil && !doc.Exists()) {
		_, err = ref.Set(ctx, map[string]interface{}{
			"userId":       userID,
			"prayerCounts": map[string]int{prayerID: 1},
			"totalPrayers": 1,
			"createdAt":    firestore.ServerTimestamp,
			"updatedAt":    firestore.ServerTimestamp,
		})
		return err
	}
	if err != nil {
		return err
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"prayerCounts", prayerID}, Value: firestore.Increment(1)},
		{Path: "totalPrayers", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return err
}

func (f *FirestoreDataSource) FetchPrayerStats(ctx context.Context, userID string) (map[string]int, error) {
	if userID == "" {
		return map[string]int{}, nil
	}

	doc, err := f.client.Collection("userStats").Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}

	var stats struct {
		Prayer_Counts map[string]int `firestore:"prayerCounts"`
	}
	if err := doc.DataTo(&stats); err != nil {
		return nil, err
	}
	if stats.Prayer_Counts == nil {
		stats.Prayer_Counts = map[string]int{}
	}
	return stats.Prayer_Counts, nil
}

const recentPrayersCap = 10

func (f *FirestoreDataSource) AddRecentPrayer(ctx context.Context, userID string, prayerID string) error {
	if userID == "" || prayerID == "" {
		log.Println("Ignoring recent-prayer add with empty identifiers")
		return nil
	}

	ref := f.client.Collection("userRecent").Doc(userID)

	recent, err := f.FetchRecentPrayers(ctx, userID)
	if err != nil {
		return err
	}

	// De-dup, most recent first, capped.
	updated := []string{prayerID}
	for _, id := range recent {
		if id != prayerID {
			updated = append(updated, id)
		}
	}
	if len(updated) > recentPrayersCap {
		updated = updated[:recentPrayersCap]
	}

	_, err = ref.Set(ctx, map[string]interface{}{
		"userId":    userID,
		"prayers":   updated,
		"updatedAt": firestore.ServerTimestamp,
	})
	return err
}

func (f *FirestoreDataSource) FetchRecentPrayers(ctx context.Context, userID string) ([]string, error) {
	doc, err := f.client.Collection("userRecent").Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var record struct {
		Prayers []string `firestore:"prayers"`
	}
	if err := doc.DataTo(&record); err != nil {
		return nil, err
	}
	if record.Prayers == nil {
		record.Prayers = []string{}
	}
	return record.Prayers, nil
}

func (f *FirestoreDataSource) FetchVerseOfTheDay(ctx context.Context, date string) (*models.VerseOfTheDay, error) {
	iter := f.client.Collection("versesOfTheDay").
		Where("date", "==", date).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var verse models.VerseOfTheDay
	if err := doc.DataTo(&verse); err != nil {
		return nil, err
	}
	return &verse, nil
}

func (f *FirestoreDataSource) FetchReminderProfiles(ctx context.Context) ([]models.UserProfile, error) {
	// Firestore has no OR filter on this API surface, so the two toggles are
	// queried separately and merged on user id.
	seen := make(map[string]bool)
	var profiles []models.UserProfile

	for _, field := range []string{"preferences.morningReminder", "preferences.eveningReminder"} {
		iter := f.client.Collection("users").Where(field, "==", true).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, err
			}

			var profile models.UserProfile
			if err := doc.DataTo(&profile); err != nil {
				log.Println("Skipping malformed user document:", doc.Ref.ID, err)
				continue
			}
			if profile.User_ID == "" {
				profile.User_ID = doc.Ref.ID
			}
			if !seen[profile.User_ID] {
				seen[profile.User_ID] = true
				profiles = append(profiles, profile)
			}
		}
		iter.Stop()
	}
	return profiles, nil
}

func (f *FirestoreDataSource) collectPrayers(iter *firestore.DocumentIterator) ([]models.Prayer, error) {
	defer iter.Stop()

	var prayers []models.Prayer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var prayer models.Prayer
		if err := doc.DataTo(&prayer); err != nil {
			log.Println("Skipping malformed prayer document:", doc.Ref.ID, err)
			continue
		}
		if prayer.Prayer_ID == "" {
			prayer.Prayer_ID = doc.Ref.ID
		}
		prayers = append(prayers, prayer)
	}
	return prayers, nil
}
