package session

import (
	"github.com/gabbai/backend/internal/domain/scanning"
	"github.com/gabbai/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StateStoreFactory creates scan state stores based on configuration
type StateStoreFactory struct {
	redisConfig config.RedisConfig
	logger      *zap.Logger
}

// NewStateStoreFactory creates a new factory
func NewStateStoreFactory(cfg config.RedisConfig, logger *zap.Logger) *StateStoreFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateStoreFactory{
		redisConfig: cfg,
		logger:      logger,
	}
}

// CreateStore creates a scan state store. When Redis is enabled it is tried
// first; on connection failure the factory falls back to the in-memory store
// so a synagogue install without Redis still works.
func (f *StateStoreFactory) CreateStore() scanning.StateStore {
	if f.redisConfig.Enabled {
		store, err := NewRedisStateStore(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		})
		if err == nil {
			f.logger.Info("Using Redis scan state store",
				zap.String("host", f.redisConfig.Host),
				zap.Int("port", f.redisConfig.Port))
			return store
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory scan state store",
			zap.Error(err))
	}

	f.logger.Info("Using in-memory scan state store")
	return NewInMemoryStateStore()
}
