package store

import (
	"context"
	"io"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
)

// Store persists the checkpoint of contract discovery.
type Store interface {
	io.Closer

	// Load returns the last saved checkpoint. If none saved yet, returns a fresh checkpoint.
	Load(ctx context.Context) (*types.CheckpointState, error)

	// Save atomically replaces the saved checkpoint with the given one.
	Save(ctx context.Context, state *types.CheckpointState) error
}
