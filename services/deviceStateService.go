package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/iPrayUST/models"
)

// DeviceStateService keeps the per-device flags and unauthenticated-mode
// lists (bookmarks, recent prayers, stats) that the mobile client relies on
// before sign-in. Everything lives in the shared KV store under a device
// prefix.
type DeviceStateService struct {
	kv KV
}

func NewDeviceStateService(kv KV) *DeviceStateService {
	return &DeviceStateService{kv: kv}
}

func deviceKey(deviceID string, name string) string {
	return fmt.Sprintf("device:%s:%s", deviceID, name)
}

var knownFlags = map[string]bool{
	models.FlagOnboardingCompleted: true,
	models.FlagNavInstructionSeen:  true,
	models.FlagFeatureOverlaySeen:  true,
	models.FlagLoggedIn:            true,
}

// GetState aggregates every flag and list for one device. Unreadable entries
// degrade to their zero values.
func (s *DeviceStateService) GetState(ctx context.Context, deviceID string) models.DeviceState {
	state := models.DeviceState{
		Visited_Tabs:   []string{},
		Bookmarks:      []string{},
		Recent_Prayers: []string{},
		Prayer_Stats:   map[string]int{},
	}

	state.Onboarding_Completed = s.getFlag(ctx, deviceID, models.FlagOnboardingCompleted)
	state.Nav_Instruction_Seen = s.getFlag(ctx, deviceID, models.FlagNavInstructionSeen)
	state.Feature_Overlay_Seen = s.getFlag(ctx, deviceID, models.FlagFeatureOverlaySeen)
	state.Logged_In = s.getFlag(ctx, deviceID, models.FlagLoggedIn)

	s.getJSON(ctx, deviceID, "visited_tabs", &state.Visited_Tabs)
	s.getJSON(ctx, deviceID, "user_bookmarks", &state.Bookmarks)
	s.getJSON(ctx, deviceID, "recent_prayers", &state.Recent_Prayers)
	s.getJSON(ctx, deviceID, "prayer_stats", &state.Prayer_Stats)

	return state
}

// SetFlag writes one boolean flag. Unknown flag names are rejected before any
// I/O happens.
func (s *DeviceStateService) SetFlag(ctx context.Context, deviceID string, flag string, value bool) error {
	if !knownFlags[flag] {
		return fmt.Errorf("unknown device flag %q", flag)
	}
	stored := "false"
	if value {
		stored = "true"
	}
	return s.kv.Set(ctx, deviceKey(deviceID, flag), stored)
}

func (s *DeviceStateService) MarkTabVisited(ctx context.Context, deviceID string, tab string) error {
	if tab == "" {
		return fmt.Errorf("tab name is required")
	}

	var tabs []string
	s.getJSON(ctx, deviceID, "visited_tabs", &tabs)
	for _, visited := range tabs {
		if visited == tab {
			return nil
		}
	}
	tabs = append(tabs, tab)
	return s.setJSON(ctx, deviceID, "visited_tabs", tabs)
}

func (s *DeviceStateService) GetBookmarks(ctx context.Context, deviceID string) []string {
	bookmarks := []string{}
	s.getJSON(ctx, deviceID, "user_bookmarks", &bookmarks)
	return bookmarks
}

func (s *DeviceStateService) AddBookmark(ctx context.Context, deviceID string, prayerID string) error {
	if prayerID == "" {
		return fmt.Errorf("prayer id is required")
	}

	bookmarks := s.GetBookmarks(ctx, deviceID)
	for _, id := range bookmarks {
		if id == prayerID {
			return nil
		}
	}
	bookmarks = append(bookmarks, prayerID)
	return s.setJSON(ctx, deviceID, "user_bookmarks", bookmarks)
}

func (s *DeviceStateService) RemoveBookmark(ctx context.Context, deviceID string, prayerID string) error {
	if prayerID == "" {
		return fmt.Errorf("prayer id is required")
	}

	bookmarks := s.GetBookmarks(ctx, deviceID)
	updated := make([]string, 0, len(bookmarks))
	for _, id := range bookmarks {
		if id != prayerID {
			updated = append(updated, id)
		}
	}
	return s.setJSON(ctx, deviceID, "user_bookmarks", updated)
}

func (s *DeviceStateService) GetRecentPrayers(ctx context.Context, deviceID string) []string {
	recent := []string{}
	s.getJSON(ctx, deviceID, "recent_prayers", &recent)
	return recent
}

// AddRecentPrayer keeps the list de-duplicated, most recent first, capped at
// ten entries.
func (s *DeviceStateService) AddRecentPrayer(ctx context.Context, deviceID string, prayerID string) error {
	if prayerID == "" {
		return fmt.Errorf("prayer id is required")
	}

	recent := s.GetRecentPrayers(ctx, deviceID)
	updated := []string{prayerID}
	for _, id := range recent {
		if id != prayerID {
			updated = append(updated, id)
		}
	}
	if len(updated) > recentPrayersCap {
		updated = updated[:recentPrayersCap]
	}
	return s.setJSON(ctx, deviceID, "recent_prayers", updated)
}

func (s *DeviceStateService) GetPrayerStats(ctx context.Context, deviceID string) map[string]int {
	stats := map[string]int{}
	s.getJSON(ctx, deviceID, "prayer_stats", &stats)
	return stats
}

func (s *DeviceStateService) IncrementPrayerCount(ctx context.Context, deviceID string, prayerID string) error {
	if prayerID == "" {
		return fmt.Errorf("prayer id is required")
	}

	stats := s.GetPrayerStats(ctx, deviceID)
	stats[prayerID]++
	return s.setJSON(ctx, deviceID, "prayer_stats", stats)
}

func (s *DeviceStateService) getFlag(ctx context.Context, deviceID string, flag string) bool {
	value, found, err := s.kv.Get(ctx, deviceKey(deviceID, flag))
	if err != nil {
		log.Printf("Error reading device flag %s: %v", flag, err)
		return false
	}
	return found && value == "true"
}

func (s *DeviceStateService) getJSON(ctx context.Context, deviceID string, name string, out interface{}) {
	raw, found, err := s.kv.Get(ctx, deviceKey(deviceID, name))
	if err != nil {
		log.Printf("Error reading device %s: %v", name, err)
		return
	}
	if !found {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Error decoding device %s: %v", name, err)
	}
}

func (s *DeviceStateService) setJSON(ctx context.Context, deviceID string, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, deviceKey(deviceID, name), string(raw))
}
