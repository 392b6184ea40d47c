package models

// DeviceState mirrors the per-device flags and unauthenticated-mode lists the
// mobile client keeps before a user signs in.
type DeviceState struct {
	Onboarding_Completed bool           `json:"onboardingCompleted"`
	Nav_Instruction_Seen bool           `json:"navInstructionSeen"`
	Feature_Overlay_Seen bool           `json:"featureOverlaySeen"`
	Logged_In            bool           `json:"loggedIn"`
	Visited_Tabs         []string       `json:"visitedTabs"`
	Bookmarks            []string       `json:"bookmarks"`
	Recent_Prayers       []string       `json:"recentPrayers"`
	Prayer_Stats         map[string]int `json:"prayerStats"`
}

// Known flag names accepted by the device-state endpoints.
const (
	FlagOnboardingCompleted = "onboarding_completed"
	FlagNavInstructionSeen  = "nav_instruction_seen"
	FlagFeatureOverlaySeen  = "feature_overlay_seen"
	FlagLoggedIn            = "user_logged_in"
)
