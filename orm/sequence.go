package orm

import (
	"encoding/binary"

	"github.com/iov-one/fungible"
)

// Sequence is a persistent counter stored under "_s.<bucket>:<name>".
// It starts at zero and the first value handed out is one.
type Sequence struct {
	id []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextInt advances the counter and returns its new value.
func (s Sequence) NextInt(db fungible.KVStore) int64 {
	next := s.Latest(db) + 1
	db.Set(s.id, EncodeSequence(next))
	return next
}

// NextVal is NextInt encoded with EncodeSequence.
func (s Sequence) NextVal(db fungible.KVStore) []byte {
	return EncodeSequence(s.NextInt(db))
}

// Latest is the last value handed out, or zero.
func (s Sequence) Latest(db fungible.ReadOnlyKVStore) int64 {
	return DecodeSequence(db.Get(s.id))
}

// EncodeSequence writes val big endian, so byte order follows numeric
// order for non negative values.
func EncodeSequence(val int64) []byte {
	var bz [8]byte
	binary.BigEndian.PutUint64(bz[:], uint64(val))
	return bz[:]
}

// DecodeSequence reads EncodeSequence output. Anything else is zero.
func DecodeSequence(bz []byte) int64 {
	if len(bz) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}
