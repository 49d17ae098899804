package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/fungible/fungibletest/assert"
	"github.com/iov-one/fungible/store"
)

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("outbox", "chain-a")
	b := NewSequence("outbox", "chain-b")
	again := NewSequence("outbox", "chain-a")

	assert.Equal(t, int64(0), a.Latest(db))
	for i := int64(1); i <= 5; i++ {
		assert.Equal(t, i, a.NextInt(db))
	}
	assert.Equal(t, int64(1), b.NextInt(db))
	assert.Equal(t, int64(5), again.Latest(db))
	assert.Equal(t, int64(6), again.NextInt(db))
	assert.Equal(t, int64(1), b.Latest(db))
}

func TestSequenceBytesAreOrdered(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("seqs", "id")

	prev := s.NextVal(db)
	for i := 0; i < 300; i++ {
		next := s.NextVal(db)
		if bytes.Compare(prev, next) >= 0 {
			t.Fatalf("%X not greater than %X", next, prev)
		}
		prev = next
	}
	assert.Equal(t, int64(301), DecodeSequence(prev))
	assert.Equal(t, int64(0), DecodeSequence([]byte{1, 2}))
}
