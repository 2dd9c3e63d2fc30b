// Package factory opens the db.Store selected by the storage config.
package factory

import (
	"fmt"

	"github.com/kailas-cloud/regexboard/internal/config"
	"github.com/kailas-cloud/regexboard/internal/db"
	"github.com/kailas-cloud/regexboard/internal/db/memory"
	dbRedis "github.com/kailas-cloud/regexboard/internal/db/redis"
	"github.com/kailas-cloud/regexboard/internal/db/sqlite"
)

// New creates the store for cfg.Driver. The caller owns Close.
// Redis and Valkey share the rueidis-backed store; only plain GET/SET/DEL are used.
func New(cfg config.StorageConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite, "":
		s, err := sqlite.NewStore(sqlite.Config{Path: cfg.Path})
		if err != nil {
			return nil, fmt.Errorf("create sqlite store: %w", err)
		}
		return s, nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
