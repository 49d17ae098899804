package store

import "github.com/iov-one/fungible"

// The storage interfaces live in the root package. These aliases keep
// store code free of the fungible prefix.
type (
	ReadOnlyKVStore  = fungible.ReadOnlyKVStore
	SetDeleter       = fungible.SetDeleter
	KVStore          = fungible.KVStore
	Batch            = fungible.Batch
	Iterator         = fungible.Iterator
	CacheableKVStore = fungible.CacheableKVStore
	KVCacheWrap      = fungible.KVCacheWrap
	CommitKVStore    = fungible.CommitKVStore
	CommitID         = fungible.CommitID
	Model            = fungible.Model
)

var Pair = fungible.Pair
