package leveldb

import (
	"encoding/binary"
	"sync"
)

// KeyPool is used to pool LevelDB database key for memory saving.
type KeyPool struct {
	sync.Pool

	prefixLen int
}

// NewKeyPool creats a new key pool with given prefix and key size.
func NewKeyPool(prefix string, size int) *KeyPool {
	var pool KeyPool

	pool.New = func() any {
		buf := make([]byte, len(prefix)+size)
		copy(buf, prefix)
		return &buf
	}

	pool.prefixLen = len(prefix)

	return &pool
}

// GetUint64 returns a pooled database key with the big endian encoded number, so that keys are
// iterated in numeric order.
//
// Note, the returned database key is of pointer type and requires
// to call Put method to return the database key to pool.
func (pool *KeyPool) GetUint64(v uint64) *[]byte {
	buf := pool.Pool.Get().(*[]byte)
	binary.BigEndian.PutUint64((*buf)[pool.prefixLen:], v)
	return buf
}
