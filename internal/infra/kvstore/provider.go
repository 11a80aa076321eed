// Package kvstore provides the key-value stores that persist mock fixtures.
package kvstore

import (
	"context"
	"log/slog"
	"strings"

	"aliascore/config"
	"aliascore/internal/domain/lifecycle"
	"aliascore/internal/domain/repository"
	"aliascore/internal/errors"

	"go.uber.org/fx"
)

// Supported values of mock.storage.driver.
const (
	DriverSQLite    = "sqlite"
	DriverRedis     = "redis"
	DriverMemcached = "memcached"
	DriverMemory    = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

type pinger interface {
	Ping(ctx context.Context) error
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured store and ties its lifetime to the fx lifecycle.
func New(params Params) (repository.KeyValueStore, error) {
	var storage config.StorageConfig
	if params.Config.Mock != nil {
		storage = params.Config.Mock.Storage
	}

	store, err := Open(storage)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			p, ok := store.(pinger)
			if !ok {
				return nil
			}

			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := p.Ping(ctx); err != nil {
				return err
			}
			params.Logger.Info("Fixture store ready", slog.String("driver", driverName(storage)))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

// Open creates the store selected by cfg.Driver. An empty driver selects sqlite.
func Open(cfg config.StorageConfig) (repository.KeyValueStore, error) {
	switch driverName(cfg) {
	case DriverSQLite:
		return OpenSQLite(cfg.Path)
	case DriverRedis:
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case DriverMemcached:
		return NewMemcached(splitServers(cfg.MemcachedAddr)...), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "driver %q", cfg.Driver)
	}
}

func driverName(cfg config.StorageConfig) string {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		return DriverSQLite
	}

	return driver
}

func splitServers(addr string) []string {
	var servers []string
	for _, s := range strings.Split(addr, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}

	return servers
}
