package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/iPrayUST/models"
)

// Picker chooses an index in [0, n). The default is math/rand; tests inject a
// deterministic one.
type Picker func(n int) int

// Affinity sets and rotation carried over from the mobile app's curated
// constants.
var (
	morningAffinityIDs = []string{"before-study", "guardian-angel", "morning-prayer"}
	eveningAffinityIDs = []string{"angelus", "guardian-angel"}
	mondayAffinityIDs  = []string{"before-study", "guardian-angel"}
	fridayAffinityIDs  = []string{"st-michael", "act-contrition"}
	sundayAffinityIDs  = []string{"rosary-intro", "sacred-heart"}

	categoryRotation = []string{"devotional", "protection", "consecrations", "marian", "other"}

	morningSuggestedIDs = []string{"before-study", "guardian-angel", "angelus", "st-joseph"}
	eveningSuggestedIDs = []string{"angelus", "guardian-angel", "act-contrition", "st-michael"}
	defaultSuggestedIDs = []string{"angelus", "before-study", "guardian-angel", "sacred-heart"}
)

const maxSuggestedPrayers = 4

// RecommendationEngine computes the prayer of the day and the contextual
// suggestion strip. Pure over (catalog, now) apart from the injected picker.
type RecommendationEngine struct {
	pick Picker
}

func NewRecommendationEngine(pick Picker) *RecommendationEngine {
	if pick == nil {
		pick = rand.Intn
	}
	return &RecommendationEngine{pick: pick}
}

// GetTimeContext classifies now's local hour and weekday. Morning, afternoon
// and evening partition the full 24-hour day.
func GetTimeContext(now time.Time) models.TimeContext {
	hour := now.Hour()
	day := int(now.Weekday()) // 0 = Sunday

	return models.TimeContext{
		Hour:         hour,
		Day_Of_Week:  day,
		Is_Morning:   hour >= 6 && hour < 12,
		Is_Afternoon: hour >= 12 && hour < 18,
		Is_Evening:   hour >= 18 || hour < 6,
		Is_Weekend:   day == 0 || day == 6,
		Is_Weekday:   day >= 1 && day <= 5,
	}
}

// GetPrayerOfTheDay walks an ordered cascade of candidate rules; the first
// rule with a non-empty candidate set wins and ties are broken by the picker.
// Categories are only consulted for the featured-category reason string.
func (e *RecommendationEngine) GetPrayerOfTheDay(catalog []models.Prayer, categories []models.PrayerCategory, now time.Time) models.RecommendationResult {
	context := GetTimeContext(now)

	if context.Is_Morning {
		if candidates := filterByIDs(catalog, morningAffinityIDs); len(candidates) > 0 {
			return e.choose(candidates, "Perfect for starting your day with prayer")
		}
	}

	if context.Is_Evening {
		if candidates := filterByIDs(catalog, eveningAffinityIDs); len(candidates) > 0 {
			return e.choose(candidates, "A peaceful prayer to end your day")
		}
	}

	switch context.Day_Of_Week {
	case 1: // Monday
		if candidates := filterByIDs(catalog, mondayAffinityIDs); len(candidates) > 0 {
			return e.choose(candidates, "Start your week with spiritual guidance")
		}
	case 5: // Friday
		if candidates := filterByIDs(catalog, fridayAffinityIDs); len(candidates) > 0 {
			return e.choose(candidates, "Reflect and prepare for the weekend")
		}
	case 0: // Sunday
		if candidates := filterByIDs(catalog, sundayAffinityIDs); len(candidates) > 0 {
			return e.choose(candidates, "Sunday is perfect for deeper devotion")
		}
	}

	rotated := categoryRotation[context.Day_Of_Week%len(categoryRotation)]
	if candidates := filterByCategory(catalog, rotated); len(candidates) > 0 {
		title := rotated
		for _, category := range categories {
			if category.Category_ID == rotated {
				title = strings.ToLower(category.Title)
				break
			}
		}
		return e.choose(candidates, fmt.Sprintf("Featured %s prayer", title))
	}

	if len(catalog) > 0 {
		return e.choose(catalog, "A prayer for your spiritual journey")
	}

	return models.RecommendationResult{}
}

// GetSuggestedPrayers returns up to four prayers for the suggestion strip,
// filtered by a time-of-day id set and kept in catalog order.
func (e *RecommendationEngine) GetSuggestedPrayers(catalog []models.Prayer, now time.Time) []models.Prayer {
	context := GetTimeContext(now)

	ids := defaultSuggestedIDs
	if context.Is_Morning {
		ids = morningSuggestedIDs
	} else if context.Is_Evening {
		ids = eveningSuggestedIDs
	}

	matches := filterByIDs(catalog, ids)
	if len(matches) > maxSuggestedPrayers {
		matches = matches[:maxSuggestedPrayers]
	}
	return matches
}

func (e *RecommendationEngine) choose(candidates []models.Prayer, reason string) models.RecommendationResult {
	prayer := candidates[e.pick(len(candidates))]
	return models.RecommendationResult{
		Prayer:   prayer,
		Reason:   reason,
		Category: prayer.Category,
	}
}

func filterByIDs(catalog []models.Prayer, ids []string) []models.Prayer {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var matches []models.Prayer
	for _, prayer := range catalog {
		if wanted[prayer.Prayer_ID] {
			matches = append(matches, prayer)
		}
	}
	return matches
}

func filterByCategory(catalog []models.Prayer, categoryID string) []models.Prayer {
	var matches []models.Prayer
	for _, prayer := range catalog {
		if prayer.Category == categoryID {
			matches = append(matches, prayer)
		}
	}
	return matches
}
