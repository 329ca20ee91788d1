package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Config holds the configurations of Redis store.
type Config struct {
	URL string `default:"redis://localhost:6379/0"`

	// Password overrides the password in URL if specified.
	Password string

	// Key to store the checkpoint document.
	Key string `default:"wasm-contract-indexer:checkpoint"`

	DialTimeout time.Duration `default:"5s"`
}

func DefaultConfig() (config Config) {
	defaults.SetDefaults(&config)
	return
}

// Store persists the checkpoint as a JSON document under a single Redis key, so that each save
// replaces the whole checkpoint atomically.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore connects to the configured Redis server.
func NewStore(ctx context.Context, config Config) (*Store, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to parse redis URL")
	}

	if len(config.Password) > 0 {
		opts.Password = config.Password
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, config.DialTimeout)
	defer cancel()

	if err = client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.WithMessage(err, "Failed to connect to redis")
	}

	return &Store{client, config.Key}, nil
}

// Load implements the store.Store interface.
func (store *Store) Load(ctx context.Context) (*types.CheckpointState, error) {
	data, err := store.client.Get(ctx, store.key).Bytes()
	if err == redis.Nil {
		return types.NewCheckpointState(), nil
	}

	if err != nil {
		return nil, errors.WithMessagef(err, "Failed to get checkpoint of key %v", store.key)
	}

	var state types.CheckpointState
	if err = json.Unmarshal(data, &state); err != nil {
		return nil, errors.WithMessagef(err, "Failed to decode checkpoint of key %v", store.key)
	}

	return state.Normalize(), nil
}

// Save implements the store.Store interface.
func (store *Store) Save(ctx context.Context, state *types.CheckpointState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.WithMessage(err, "Failed to encode checkpoint")
	}

	if err = store.client.Set(ctx, store.key, data, 0).Err(); err != nil {
		return errors.WithMessagef(err, "Failed to set checkpoint of key %v", store.key)
	}

	return nil
}

// Close closes the redis client.
func (store *Store) Close() error {
	return store.client.Close()
}
