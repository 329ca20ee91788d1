package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Conflux-Chain/wasm-contract-indexer/store/file"
	"github.com/Conflux-Chain/wasm-contract-indexer/store/leveldb"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, TypeFile, config.Type)
	assert.Equal(t, "cached_data.json", config.File.Path)
	assert.Equal(t, "db", config.LevelDB.Path)
	assert.Equal(t, 3, config.Writer.MaxRetries)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	config := DefaultConfig()
	config.File.Path = filepath.Join(dir, "cached_data.json")
	config.LevelDB.Path = filepath.Join(dir, "db")

	store, err := NewStore(context.Background(), config)
	assert.Nil(t, err)
	assert.IsType(t, &file.Store{}, store)
	store.Close()

	config.Type = "LevelDB"
	store, err = NewStore(context.Background(), config)
	assert.Nil(t, err)
	assert.IsType(t, &leveldb.Store{}, store)
	store.Close()

	config.Type = "mysql"
	_, err = NewStore(context.Background(), config)
	assert.Error(t, err)
}
