package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iPrayUST/models"
	"github.com/iPrayUST/services"
)

func TestGetPrayerOfTheDay(t *testing.T) {
	tests := []struct {
		name           string
		remote         *stubRemote
		expectedStatus int
	}{
		{
			name: "recommendation from catalog",
			remote: &stubRemote{prayers: []models.Prayer{
				testPrayer("angelus", "marian"),
				testPrayer("guardian-angel", "protection"),
			}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no catalog available",
			remote:         &stubRemote{fail: true},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sync, _ := setupSync(tt.remote)
			engine := services.NewRecommendationEngine(func(n int) int { return 0 })
			c, w := SetupTestContext("GET", "/recommendations/prayer-of-the-day")

			GetPrayerOfTheDay(sync, engine, tt.remote)(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response models.RecommendationResult
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.NotEmpty(t, response.Prayer.Prayer_ID)
				assert.NotEmpty(t, response.Reason)
			}
		})
	}
}

func TestGetSuggestedForNow(t *testing.T) {
	remote := &stubRemote{prayers: []models.Prayer{
		testPrayer("angelus", "marian"),
		testPrayer("guardian-angel", "protection"),
	}}
	sync, _ := setupSync(remote)
	engine := services.NewRecommendationEngine(nil)
	c, w := SetupTestContext("GET", "/recommendations/suggested")

	GetSuggestedForNow(sync, engine)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Context models.TimeContext `json:"context"`
		Prayers []models.Prayer    `json:"prayers"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response.Prayers)
	assert.LessOrEqual(t, len(response.Prayers), 4)
}
