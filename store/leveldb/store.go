package leveldb

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	keyLastPage   = []byte("lastPage")
	keyNumRecords = []byte("numRecords")

	prefixRecord = "idx2r"
)

// Config holds the configurations for LevelDB database.
type Config struct {
	// LevelDB database path.
	Path string `default:"db"`
}

func DefaultConfig() (config Config) {
	defaults.SetDefaults(&config)
	return
}

// Store persists the checkpoint in a LevelDB database.
//
// Contract records are stored in discovery order with one key per record. Usually, only the newly
// discovered records are written along with the last page in a batch.
type Store struct {
	db *leveldb.DB

	// whether any checkpoint saved in database
	saved bool

	lastPage   uint64
	numRecords uint64

	// use object pool for memory saving
	keyIndex2RecordPool *KeyPool

	metrics Metrics
}

// NewStore opens or creates a DB for the given path.
//
// If corruption detected for an existing DB, it will try to recover the DB.
func NewStore(config Config, options ...opt.Options) (*Store, error) {
	var opt *opt.Options
	if len(options) > 0 {
		opt = &options[0]
	}

	// open or create database
	db, err := leveldb.OpenFile(config.Path, opt)
	if dberrors.IsCorrupted(err) {
		// try to recover database
		logrus.WithError(err).WithField("path", config.Path).Warn("Failed to open corrupted file, try to recover")
		db, err = leveldb.RecoverFile(config.Path, opt)
		if err != nil {
			return nil, errors.WithMessagef(err, "Failed to recover file %v", config.Path)
		}
	} else if err != nil {
		return nil, errors.WithMessagef(err, "Failed to open file %v", config.Path)
	}

	store := Store{
		db:                  db,
		keyIndex2RecordPool: NewKeyPool(prefixRecord, 8),
	}

	lastPage, ok, err := store.readUint64(keyLastPage)
	if err != nil {
		db.Close()
		return nil, errors.WithMessage(err, "Failed to load last page in database")
	}

	numRecords, _, err := store.readUint64(keyNumRecords)
	if err != nil {
		db.Close()
		return nil, errors.WithMessage(err, "Failed to load number of records in database")
	}

	store.saved = ok
	store.lastPage = lastPage
	store.numRecords = numRecords

	return &store, nil
}

// Close closes the underlying LevelDB database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Load reads all the records in database. If no checkpoint saved, returns a fresh checkpoint.
func (store *Store) Load(ctx context.Context) (*types.CheckpointState, error) {
	if !store.saved {
		return types.NewCheckpointState(), nil
	}

	state := types.CheckpointState{
		LastPage: store.lastPage,
		Data:     make([]types.ContractRecord, 0, store.numRecords),
	}

	iter := store.db.NewIterator(util.BytesPrefix([]byte(prefixRecord)), nil)
	defer iter.Release()

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var record types.ContractRecord
		if err := unmarshalJson(iter.Value(), &record); err != nil {
			return nil, errors.WithMessagef(err, "Failed to decode record %v", len(state.Data))
		}

		state.Data = append(state.Data, record)
	}

	if err := iter.Error(); err != nil {
		return nil, errors.WithMessage(err, "Failed to iterate records")
	}

	if uint64(len(state.Data)) != store.numRecords {
		return nil, errors.Errorf("Records mismatch, expected = %v, actual = %v", store.numRecords, len(state.Data))
	}

	return &state, nil
}

// Save replaces the saved checkpoint with the given one in a batch.
//
// If the saved records are a prefix of the given ones, only the newly discovered records are
// written. Otherwise, all records are rewritten and the stale ones removed.
//
// Note, this method is not thread safe!
func (store *Store) Save(ctx context.Context, state *types.CheckpointState) error {
	start := time.Now()
	total := uint64(state.Len())

	encoded := make([][]byte, 0, total)
	for i, record := range state.Data {
		recordJson, err := json.Marshal(record)
		if err != nil {
			return errors.WithMessagef(err, "Failed to encode record %v", i)
		}

		encoded = append(encoded, recordJson)
	}

	appending, err := store.isPrefix(encoded)
	if err != nil {
		return errors.WithMessage(err, "Failed to compare saved records")
	}

	batch := new(leveldb.Batch)

	var from uint64
	if appending {
		from = store.numRecords
	} else {
		logrus.WithFields(logrus.Fields{
			"savedPage":    store.lastPage,
			"savedRecords": store.numRecords,
			"page":         state.LastPage,
			"records":      total,
		}).Info("Checkpoint diverged from saved one, rewrite all records")

		for i := total; i < store.numRecords; i++ {
			store.delete(batch, store.keyIndex2RecordPool, i)
		}
	}

	for i := from; i < total; i++ {
		store.write(batch, store.keyIndex2RecordPool, i, encoded[i])
	}

	batch.Put(keyNumRecords, uint64ToBytes(total))
	batch.Put(keyLastPage, uint64ToBytes(state.LastPage))

	if err := store.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}

	store.metrics.NumRecords().Update(int64(total - from))

	store.saved = true
	store.lastPage = state.LastPage
	store.numRecords = total

	store.metrics.LastPage().Update(int64(state.LastPage))
	store.metrics.Write().UpdateSince(start)

	return nil
}

// isPrefix checks whether the saved records are the leading ones of the given encoded records.
func (store *Store) isPrefix(encoded [][]byte) (bool, error) {
	if store.numRecords > uint64(len(encoded)) {
		return false, nil
	}

	if store.numRecords == 0 {
		return true, nil
	}

	iter := store.db.NewIterator(util.BytesPrefix([]byte(prefixRecord)), nil)
	defer iter.Release()

	var i int
	for ; iter.Next(); i++ {
		if i >= len(encoded) || !bytes.Equal(iter.Value(), encoded[i]) {
			return false, nil
		}
	}

	if err := iter.Error(); err != nil {
		return false, err
	}

	return uint64(i) == store.numRecords, nil
}
