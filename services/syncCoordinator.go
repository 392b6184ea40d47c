package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iPrayUST/models"
)

const syncStatusKey = "sync_status"

// SyncCoordinator decides, per resource, whether to serve from cache or fetch
// fresh. Remote failures never escape it: a failed sync degrades to the best
// cached value (or an empty default) and flips the persisted status offline.
type SyncCoordinator struct {
	cache   *CacheStore
	remote  RemoteDataSource
	kv      KV
	timeout time.Duration
	now     func() time.Time
}

func NewSyncCoordinator(cache *CacheStore, remote RemoteDataSource, kv KV, timeout time.Duration) *SyncCoordinator {
	return &SyncCoordinator{
		cache:   cache,
		remote:  remote,
		kv:      kv,
		timeout: timeout,
		now:     time.Now,
	}
}

// resource describes one cache/sync unit generically: how to pull it out of a
// snapshot, how to fetch it fresh, and how to write it back.
type resource[R any] struct {
	name   string
	cached func(*models.CacheSnapshot) R
	empty  func(R) bool
	fetch  func(context.Context) (R, error)
	store  func(R) models.CacheSnapshotPartial
}

func (c *SyncCoordinator) prayersResource() resource[[]models.Prayer] {
	return resource[[]models.Prayer]{
		name:   "prayers",
		cached: func(s *models.CacheSnapshot) []models.Prayer { return s.Prayers },
		empty:  func(v []models.Prayer) bool { return len(v) == 0 },
		fetch:  c.remote.FetchAllPrayers,
		store: func(v []models.Prayer) models.CacheSnapshotPartial {
			// Nil means "keep" to Write, so an empty fetch result must stay
			// non-nil to overwrite a stale cached list.
			if v == nil {
				v = []models.Prayer{}
			}
			return models.CacheSnapshotPartial{Prayers: v}
		},
	}
}

func (c *SyncCoordinator) suggestedResource() resource[[]models.Prayer] {
	return resource[[]models.Prayer]{
		name:   "suggested prayers",
		cached: func(s *models.CacheSnapshot) []models.Prayer { return s.Suggested_Prayers },
		empty:  func(v []models.Prayer) bool { return len(v) == 0 },
		fetch:  c.remote.FetchSuggestedPrayers,
		store: func(v []models.Prayer) models.CacheSnapshotPartial {
			if v == nil {
				v = []models.Prayer{}
			}
			return models.CacheSnapshotPartial{Suggested_Prayers: v}
		},
	}
}

func (c *SyncCoordinator) profileResource(userID string) resource[*models.UserProfile] {
	return resource[*models.UserProfile]{
		name:   "user profile",
		cached: func(s *models.CacheSnapshot) *models.UserProfile { return s.User_Profile },
		empty:  func(v *models.UserProfile) bool { return v == nil },
		fetch: func(ctx context.Context) (*models.UserProfile, error) {
			return c.remote.FetchUserProfile(ctx, userID)
		},
		store: func(v *models.UserProfile) models.CacheSnapshotPartial {
			return models.CacheSnapshotPartial{User_Profile: v, Clear_User_Profile: v == nil}
		},
	}
}

func (c *SyncCoordinator) GetPrayersWithOfflineSupport(ctx context.Context) []models.Prayer {
	return getWithOfflineSupport(ctx, c, c.prayersResource())
}

func (c *SyncCoordinator) GetSuggestedPrayersWithOfflineSupport(ctx context.Context) []models.Prayer {
	return getWithOfflineSupport(ctx, c, c.suggestedResource())
}

func (c *SyncCoordinator) GetUserProfileWithOfflineSupport(ctx context.Context, userID string) *models.UserProfile {
	return getWithOfflineSupport(ctx, c, c.profileResource(userID))
}

func (c *SyncCoordinator) SyncPrayers(ctx context.Context) []models.Prayer {
	return syncResource(ctx, c, c.prayersResource())
}

func (c *SyncCoordinator) SyncSuggestedPrayers(ctx context.Context) []models.Prayer {
	return syncResource(ctx, c, c.suggestedResource())
}

func (c *SyncCoordinator) SyncUserProfile(ctx context.Context, userID string) *models.UserProfile {
	return syncResource(ctx, c, c.profileResource(userID))
}

// getWithOfflineSupport serves a cached value immediately when one exists and
// refreshes it in the background for next time; otherwise it syncs inline.
func getWithOfflineSupport[R any](ctx context.Context, c *SyncCoordinator, res resource[R]) R {
	if snapshot := c.cache.Read(ctx); snapshot != nil {
		if v := res.cached(snapshot); !res.empty(v) {
			backgroundSync(c, res)
			return v
		}
	}
	return syncResource(ctx, c, res)
}

// backgroundSync refreshes a resource on a detached context so the attempt
// neither blocks the caller nor outlives the request that spawned it by more
// than the remote timeout. Failures are logged by syncResource and go no
// further.
func backgroundSync[R any](c *SyncCoordinator, res resource[R]) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered panic in background sync of %s: %v", res.name, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		syncResource(ctx, c, res)
	}()
}

// syncResource performs the single remote attempt for one resource. On
// success the cache write lands before the status update, which lands before
// return. On failure the caller gets whatever is cached, or a zero value.
func syncResource[R any](ctx context.Context, c *SyncCoordinator, res resource[R]) R {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fresh, err := res.fetch(fetchCtx)
	if err != nil {
		log.Printf("Error syncing %s, using cached data: %v", res.name, err)
		c.setSyncStatus(ctx, func(s *models.SyncStatus) {
			s.Is_Online = false
		})

		if snapshot := c.cache.Read(ctx); snapshot != nil {
			if v := res.cached(snapshot); !res.empty(v) {
				return v
			}
		}
		var zero R
		return zero
	}

	c.cache.Write(ctx, res.store(fresh))
	c.setSyncStatus(ctx, func(s *models.SyncStatus) {
		s.Is_Online = true
		s.Last_Sync_Time = c.now().UnixMilli()
	})
	return fresh
}

// ForceRefresh drops the snapshot and zeroes the sync clock so the next read
// is forced to go remote.
func (c *SyncCoordinator) ForceRefresh(ctx context.Context) {
	c.cache.Clear(ctx)
	c.setSyncStatus(ctx, func(s *models.SyncStatus) {
		s.Is_Online = true
		s.Last_Sync_Time = 0
		s.Pending_Updates = []string{}
	})
}

// GetSyncStatus loads the persisted status, defaulting to online/never-synced
// when absent or unreadable.
func (c *SyncCoordinator) GetSyncStatus(ctx context.Context) models.SyncStatus {
	status := models.SyncStatus{
		Is_Online:       true,
		Last_Sync_Time:  0,
		Pending_Updates: []string{},
	}

	raw, found, err := c.kv.Get(ctx, syncStatusKey)
	if err != nil || !found {
		if err != nil {
			log.Println("Error getting sync status:", err)
		}
		return status
	}
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		log.Println("Error decoding sync status:", err)
		return models.SyncStatus{Is_Online: true, Pending_Updates: []string{}}
	}
	if status.Pending_Updates == nil {
		status.Pending_Updates = []string{}
	}
	return status
}

func (c *SyncCoordinator) setSyncStatus(ctx context.Context, mutate func(*models.SyncStatus)) {
	status := c.GetSyncStatus(ctx)
	mutate(&status)

	raw, err := json.Marshal(status)
	if err != nil {
		log.Println("Error encoding sync status:", err)
		return
	}
	if err := c.kv.Set(ctx, syncStatusKey, string(raw)); err != nil {
		log.Println("Error setting sync status:", err)
	}
}
