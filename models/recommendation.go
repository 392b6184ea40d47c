package models

// TimeContext classifies a wall-clock instant for recommendation rules.
// Morning/afternoon/evening partition the 24-hour day.
type TimeContext struct {
	Hour         int  `json:"hour"`
	Day_Of_Week  int  `json:"dayOfWeek"` // 0 = Sunday
	Is_Morning   bool `json:"isMorning"`
	Is_Afternoon bool `json:"isAfternoon"`
	Is_Evening   bool `json:"isEvening"`
	Is_Weekend   bool `json:"isWeekend"`
	Is_Weekday   bool `json:"isWeekday"`
}

// RecommendationResult is a chosen prayer plus the human-readable reason it
// was picked. Purely derived, never persisted.
type RecommendationResult struct {
	Prayer   Prayer `json:"prayer"`
	Reason   string `json:"reason"`
	Category string `json:"category"`
}
