package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/stretchr/testify/assert"
)

func createTestStore(t *testing.T) *Store {
	url := os.Getenv("TEST_REDIS_URL")
	if len(url) == 0 {
		t.Skip("TEST_REDIS_URL not specified")
	}

	config := DefaultConfig()
	config.URL = url
	config.Key = fmt.Sprintf("wasm-contract-indexer:test:%v", time.Now().UnixNano())

	store, err := NewStore(context.Background(), config)
	assert.Nil(t, err)

	t.Cleanup(func() {
		store.client.Del(context.Background(), store.key)
		store.Close()
	})

	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	state, err := store.Load(ctx)
	assert.Nil(t, err)
	assert.Equal(t, types.NewCheckpointState(), state)

	assert.Nil(t, state.Advance(1, types.ContractRecord{
		CodeID:    1,
		Created:   types.Null[types.AbsoluteTxPosition](),
		Extension: types.Some(types.Extension{TypeUrl: "/ext", Value: types.Bytes{1}}),
	}))
	assert.Nil(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	assert.Nil(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoadCorrupted(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	assert.Nil(t, store.client.Set(ctx, store.key, "not json", 0).Err())

	_, err := store.Load(ctx)
	assert.Error(t, err)
}

func TestInvalidURL(t *testing.T) {
	_, err := NewStore(context.Background(), Config{URL: "invalid://localhost"})
	assert.Error(t, err)
}
