/*
Package orm splits the state into named buckets of protobuf models.

Every key of a bucket starts with its name and a colon, so buckets never
overlap and a bucket can be iterated by prefix. A model validates itself
before it is written.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/fungible"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores raw values under a name prefix. Wrap it in a ModelBucket
// to keep a single value type per bucket.
type Bucket struct {
	name   string
	prefix []byte
}

var _ fungible.QueryHandler = Bucket{}

// NewBucket panics on a name outside [a-z_]{3,10}. Names are constants,
// so this fails at startup.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":")}
}

func (b Bucket) Name() string { return b.name }

// Register serves the bucket under "/name", using the bucket name when
// name is empty. Query data is a key relative to the bucket.
func (b Bucket) Register(name string, r fungible.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

func (b Bucket) Query(db fungible.ReadOnlyKVStore, mod string, data []byte) ([]fungible.Model, error) {
	return lookup(db, mod, b.DBKey(data))
}

// DBKey returns a new slice holding the prefixed key.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...)
}

func (b Bucket) Get(db fungible.ReadOnlyKVStore, key []byte) []byte {
	return db.Get(b.DBKey(key))
}

func (b Bucket) Set(db fungible.KVStore, key, value []byte) {
	db.Set(b.DBKey(key), value)
}

func (b Bucket) Delete(db fungible.KVStore, key []byte) {
	db.Delete(b.DBKey(key))
}
