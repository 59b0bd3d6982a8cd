package persistence

import (
	"fmt"

	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/service"
)

// Backends carries the connections a store may be built on.
type Backends struct {
	Postgres *Postgres
	Redis    *Redis
	RedisKey string
}

// Compile-time checks that every backend satisfies the service's store.
var (
	_ service.RecordStore = (*FileStore)(nil)
	_ service.RecordStore = (*PostgresStore)(nil)
	_ service.RecordStore = (*RedisStore)(nil)
)

// OpenStore returns the store selected by cfg. The memory backend has no
// store and yields nil.
func OpenStore(cfg config.StorageConfig, backends Backends) (service.RecordStore, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return nil, nil
	case config.BackendFile:
		return NewFileStore(cfg.FilePath), nil
	case config.BackendPostgres:
		pool := backends.Postgres.PoolHandle()
		if pool == nil {
			return nil, fmt.Errorf("postgres storage selected but no pool is connected")
		}
		return NewPostgresStore(pool), nil
	case config.BackendRedis:
		if backends.Redis == nil || backends.Redis.Client == nil {
			return nil, fmt.Errorf("redis storage selected but no client is configured")
		}
		return NewRedisStore(backends.Redis.Client, backends.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
