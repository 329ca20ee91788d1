package leveldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPool(t *testing.T) {
	pool := NewKeyPool("foo", 8)

	key1 := pool.GetUint64(1)
	key2 := pool.GetUint64(1)
	assert.Equal(t, *key1, *key2)
	assert.False(t, key1 == key2)

	// reused key is overwritten except the prefix
	pool.Put(key1)
	key3 := pool.GetUint64(2)
	assert.Equal(t, []byte{'f', 'o', 'o', 0, 0, 0, 0, 0, 0, 0, 2}, *key3)
}

func TestKeyPoolUint64(t *testing.T) {
	pool := NewKeyPool(prefixRecord, 8)

	key1 := pool.GetUint64(1)
	assert.Equal(t, append([]byte(prefixRecord), 0, 0, 0, 0, 0, 0, 0, 1), *key1)

	key2 := pool.GetUint64(256)
	assert.Equal(t, append([]byte(prefixRecord), 0, 0, 0, 0, 0, 0, 1, 0), *key2)

	// numeric order is kept in bytes order
	assert.Less(t, string(*key1), string(*key2))
}
