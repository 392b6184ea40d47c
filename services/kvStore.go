package services

import (
	"context"

	"github.com/doug-martin/goqu/v9"
)

// KV is the durable key-value primitive shared by the cache store and the
// device-state store. Implementations must persist across restarts.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// KVStore keeps key-value pairs in the kv_store table. Constructed once with
// the database handle injected so tests can swap in a mock.
type KVStore struct {
	db *goqu.Database
}

func NewKVStore(db *goqu.Database) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	found, err := s.db.From("kv_store").
		Select("kv_value").
		Where(goqu.C("kv_key").Eq(key)).
		ScanValContext(ctx, &value)
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.db.Insert("kv_store").
		Rows(goqu.Record{"kv_key": key, "kv_value": value}).
		OnConflict(goqu.DoUpdate("kv_key", goqu.Record{
			"kv_value":        value,
			"datetime_update": goqu.L("CURRENT_TIMESTAMP"),
		})).
		Executor().
		ExecContext(ctx)
	return err
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.Delete("kv_store").
		Where(goqu.C("kv_key").Eq(key)).
		Executor().
		ExecContext(ctx)
	return err
}
