package models

// CacheSnapshot is the durable local mirror of remote read-mostly data. A
// snapshot is usable only while it is younger than the expiry window and its
// version tag matches the running app version.
type CacheSnapshot struct {
	Prayers           []Prayer     `json:"prayers"`
	Suggested_Prayers []Prayer     `json:"suggestedPrayers"`
	User_Profile      *UserProfile `json:"userProfile"`
	Last_Updated      int64        `json:"lastUpdated"` // unix millis
	Version           string       `json:"version"`
}

// CacheSnapshotPartial carries only the fields a write wants to touch. Nil
// slices/pointers leave the previously cached value in place.
type CacheSnapshotPartial struct {
	Prayers           []Prayer
	Suggested_Prayers []Prayer
	User_Profile      *UserProfile
	// Set when the write intends to replace the cached profile with "no
	// profile" rather than leave it untouched.
	Clear_User_Profile bool
}

// SyncStatus is persisted bookkeeping about the last talk with the remote.
// Pending_Updates is carried in the persisted shape but no code path queues or
// drains it today.
type SyncStatus struct {
	Is_Online       bool     `json:"isOnline"`
	Last_Sync_Time  int64    `json:"lastSyncTime"` // unix millis, 0 = never
	Pending_Updates []string `json:"pendingUpdates"`
}
