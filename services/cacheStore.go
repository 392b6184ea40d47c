package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iPrayUST/models"
)

const cacheKey = "app_cache"

// CacheStore is the durable, versioned, expiring local mirror of remote data.
// Read is the only consumer, Write the only mutator; a Read that finds an
// expired, version-mismatched or corrupt snapshot purges it and reports a miss.
type CacheStore struct {
	kv      KV
	version string
	expiry  time.Duration
	now     func() time.Time
}

func NewCacheStore(kv KV, version string, expiry time.Duration) *CacheStore {
	return &CacheStore{
		kv:      kv,
		version: version,
		expiry:  expiry,
		now:     time.Now,
	}
}

// Read loads the persisted snapshot. Any failure class (missing record, bad
// JSON, expiry, version drift, storage error) is reported as a plain miss.
func (s *CacheStore) Read(ctx context.Context) *models.CacheSnapshot {
	raw, found, err := s.kv.Get(ctx, cacheKey)
	if err != nil {
		log.Println("Error reading cached data:", err)
		return nil
	}
	if !found {
		return nil
	}

	var snapshot models.CacheSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		log.Println("Error decoding cached data, discarding:", err)
		s.Clear(ctx)
		return nil
	}

	age := s.now().UnixMilli() - snapshot.Last_Updated
	if age > s.expiry.Milliseconds() || snapshot.Version != s.version {
		s.Clear(ctx)
		return nil
	}

	return &snapshot
}

// Write merges the given fields into the existing snapshot and persists the
// whole document. Fields absent from the partial keep their previously cached
// values, so updating just the profile never erases the prayer list.
func (s *CacheStore) Write(ctx context.Context, partial models.CacheSnapshotPartial) {
	existing := s.Read(ctx)

	updated := models.CacheSnapshot{
		Last_Updated: s.now().UnixMilli(),
		Version:      s.version,
	}
	if existing != nil {
		updated.Prayers = existing.Prayers
		updated.Suggested_Prayers = existing.Suggested_Prayers
		updated.User_Profile = existing.User_Profile
	}

	if partial.Prayers != nil {
		updated.Prayers = partial.Prayers
	}
	if partial.Suggested_Prayers != nil {
		updated.Suggested_Prayers = partial.Suggested_Prayers
	}
	if partial.User_Profile != nil {
		updated.User_Profile = partial.User_Profile
	} else if partial.Clear_User_Profile {
		updated.User_Profile = nil
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		log.Println("Error encoding cached data:", err)
		return
	}
	if err := s.kv.Set(ctx, cacheKey, string(raw)); err != nil {
		log.Println("Error setting cached data:", err)
	}
}

// Clear unconditionally deletes the persisted snapshot.
func (s *CacheStore) Clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, cacheKey); err != nil {
		log.Println("Error clearing cache:", err)
	}
}
