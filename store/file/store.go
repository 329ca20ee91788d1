package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the configurations of JSON file store.
type Config struct {
	// Path of the checkpoint file.
	Path string `default:"cached_data.json"`
}

func DefaultConfig() (config Config) {
	defaults.SetDefaults(&config)
	return
}

// Store persists the checkpoint as a JSON document in a single file.
//
// The file is replaced atomically by writing a temporary file in the same directory and renaming it.
type Store struct {
	path string
}

func NewStore(config Config) *Store {
	if len(config.Path) == 0 {
		config = DefaultConfig()
	}

	return &Store{config.Path}
}

// Path returns the checkpoint file path.
func (store *Store) Path() string {
	return store.path
}

// Load loads the checkpoint from file. If the file does not exist, returns a fresh checkpoint.
func (store *Store) Load(ctx context.Context) (*types.CheckpointState, error) {
	data, err := os.ReadFile(store.path)
	if os.IsNotExist(err) {
		logrus.WithField("path", store.path).Debug("Checkpoint file not found, start from scratch")
		return types.NewCheckpointState(), nil
	}

	if err != nil {
		return nil, errors.WithMessagef(err, "Failed to read checkpoint file %v", store.path)
	}

	var state types.CheckpointState
	if err = json.Unmarshal(data, &state); err != nil {
		return nil, errors.WithMessagef(err, "Failed to decode checkpoint file %v", store.path)
	}

	state.Normalize()

	return &state, nil
}

// Save writes the checkpoint to a temporary file, and then renames it to the checkpoint file.
func (store *Store) Save(ctx context.Context, state *types.CheckpointState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.WithMessage(err, "Failed to encode checkpoint")
	}

	dir, name := filepath.Split(store.path)
	if len(dir) == 0 {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return errors.WithMessage(err, "Failed to create temporary checkpoint file")
	}

	tmpPath := tmp.Name()
	if err = writeAndSync(tmp, data); err != nil {
		os.Remove(tmpPath)
		return errors.WithMessagef(err, "Failed to write temporary checkpoint file %v", tmpPath)
	}

	if err = os.Rename(tmpPath, store.path); err != nil {
		os.Remove(tmpPath)
		return errors.WithMessagef(err, "Failed to rename checkpoint file to %v", store.path)
	}

	syncDir(dir)

	return nil
}

// Close implements the io.Closer interface.
func (store *Store) Close() error {
	return nil
}

func writeAndSync(file *os.File, data []byte) error {
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// syncDir flushes the directory entry of renamed file, which is not supported on some platforms.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()

	if err = d.Sync(); err != nil {
		logrus.WithError(err).WithField("dir", dir).Debug("Failed to sync checkpoint directory")
	}
}
