package leveldb

import (
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
)

/////////////////////////////////////////////////////////////////////////////////////
//
//                Read/Write Utils
//
/////////////////////////////////////////////////////////////////////////////////////

func uint64ToBytes(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[:]
}

func (*Store) write(batch *leveldb.Batch, pool *KeyPool, index uint64, value []byte) {
	prefixedKey := pool.GetUint64(index)
	defer pool.Put(prefixedKey)

	// batch copies the key and value
	batch.Put(*prefixedKey, value)
}

func (*Store) delete(batch *leveldb.Batch, pool *KeyPool, index uint64) {
	prefixedKey := pool.GetUint64(index)
	defer pool.Put(prefixedKey)

	batch.Delete(*prefixedKey)
}

func (store *Store) readRaw(key []byte, expectedValueSize ...int) ([]byte, bool, error) {
	value, err := store.db.Get(key, nil)
	if err == dberrors.ErrNotFound {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	// check value size
	if len(expectedValueSize) > 0 && len(value) != expectedValueSize[0] {
		return nil, false, errors.Errorf("Invalid value size, expected = %v, actual = %v", expectedValueSize[0], len(value))
	}

	return value, true, nil
}

func (store *Store) readUint64(key []byte) (uint64, bool, error) {
	value, ok, err := store.readRaw(key, 8)
	if err != nil || !ok {
		return 0, false, err
	}

	return binary.BigEndian.Uint64(value), true, nil
}

func unmarshalJson(value []byte, valPtr any) error {
	if err := json.Unmarshal(value, valPtr); err != nil {
		return errors.WithMessage(err, "Failed to unmarshal JSON")
	}

	return nil
}
