package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/stretchr/testify/assert"
)

func createTestStore(t *testing.T) *Store {
	return NewStore(Config{Path: filepath.Join(t.TempDir(), "cached_data.json")})
}

func TestLoadNotExist(t *testing.T) {
	store := createTestStore(t)

	state, err := store.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), state.LastPage)
	assert.NotNil(t, state.Data)
	assert.Empty(t, state.Data)

	// loading does not create the file
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestSaveAndLoad(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	state := types.NewCheckpointState()
	assert.Nil(t, state.Advance(1, types.ContractRecord{
		CodeID:  1,
		Creator: "juno1creator",
		Created: types.Some(types.AbsoluteTxPosition{BlockHeight: 10, TxIndex: 1}),
	}))
	assert.Nil(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	assert.Nil(t, err)
	assert.Equal(t, state, loaded)

	// replace
	assert.Nil(t, state.Advance(2, types.ContractRecord{
		CodeID:    2,
		Extension: types.Null[types.Extension](),
	}))
	assert.Nil(t, store.Save(ctx, state))

	loaded, err = store.Load(ctx)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), loaded.LastPage)
	assert.Equal(t, 2, loaded.Len())
	assert.True(t, loaded.Data[1].Extension.IsNull())
	assert.False(t, loaded.Data[1].Created.IsSet())

	// no temporary files left
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(entries))
}

func TestLoadCompatibleFormat(t *testing.T) {
	store := createTestStore(t)

	content := `{
		"last_page": 3,
		"data": [
			{"code_id": 1, "creator": "a", "admin": "", "label": "l1", "ibc_port_id": ""},
			{"code_id": 2, "creator": "b", "admin": "c", "label": "l2", "created": null, "ibc_port_id": "", "extension": null},
			{"code_id": 3, "creator": "d", "admin": "", "label": "l3", "created": {"block_height": 7, "tx_index": 0}, "ibc_port_id": "", "extension": {"type_url": "/x", "value": [1, 2]}}
		]
	}`
	assert.Nil(t, os.WriteFile(store.Path(), []byte(content), 0644))

	state, err := store.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), state.LastPage)
	assert.Equal(t, 3, state.Len())

	assert.False(t, state.Data[0].Created.IsSet())
	assert.True(t, state.Data[1].Created.IsNull())
	assert.True(t, state.Data[1].Extension.IsNull())

	ext, ok := state.Data[2].Extension.Get()
	assert.True(t, ok)
	assert.Equal(t, types.Bytes{1, 2}, ext.Value)
}

func TestLoadCorrupted(t *testing.T) {
	store := createTestStore(t)
	assert.Nil(t, os.WriteFile(store.Path(), []byte(`{"last_page": 1, "data": [`), 0644))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestLoadNullData(t *testing.T) {
	store := createTestStore(t)
	assert.Nil(t, os.WriteFile(store.Path(), []byte(`{"last_page": 5, "data": null}`), 0644))

	state, err := store.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), state.LastPage)
	assert.NotNil(t, state.Data)
}

func TestSaveFailure(t *testing.T) {
	store := NewStore(Config{Path: filepath.Join(t.TempDir(), "missing", "cached_data.json")})

	err := store.Save(context.Background(), types.NewCheckpointState())
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "cached_data.json", NewStore(Config{}).Path())
}
