package store

import (
	"context"
	"strings"

	"github.com/Conflux-Chain/wasm-contract-indexer/store/file"
	"github.com/Conflux-Chain/wasm-contract-indexer/store/leveldb"
	"github.com/Conflux-Chain/wasm-contract-indexer/store/postgres"
	"github.com/Conflux-Chain/wasm-contract-indexer/store/redis"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
)

const (
	TypeFile     = "file"
	TypeLevelDB  = "leveldb"
	TypeRedis    = "redis"
	TypePostgres = "postgres"
)

var (
	_ Store = (*file.Store)(nil)
	_ Store = (*leveldb.Store)(nil)
	_ Store = (*redis.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Config holds the configurations of checkpoint store.
type Config struct {
	// Backend type, one of file, leveldb, redis and postgres.
	Type string `default:"file"`

	File     file.Config
	LevelDB  leveldb.Config
	Redis    redis.Config
	Postgres postgres.Config

	Writer WriteOption
}

func DefaultConfig() (config Config) {
	defaults.SetDefaults(&config)
	return
}

// NewStore opens the checkpoint store of configured type.
func NewStore(ctx context.Context, config Config) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "", TypeFile:
		return file.NewStore(config.File), nil
	case TypeLevelDB:
		return leveldb.NewStore(config.LevelDB)
	case TypeRedis:
		return redis.NewStore(ctx, config.Redis)
	case TypePostgres:
		return postgres.NewStore(ctx, config.Postgres)
	default:
		return nil, errors.Errorf("Unsupported store type %v", config.Type)
	}
}
