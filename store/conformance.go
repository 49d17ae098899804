package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

// StoreFactory returns a fresh store and a function releasing it.
type StoreFactory func() (CacheableKVStore, func())

// CheckKVStore runs the behaviour every CacheableKVStore implementation
// must share against stores built by newStore.
func CheckKVStore(t *testing.T, newStore StoreFactory) {
	t.Run("get set delete", func(t *testing.T) { checkGetSet(t, newStore) })
	t.Run("nested caches", func(t *testing.T) { checkNestedCaches(t, newStore) })
	t.Run("iterate", func(t *testing.T) { checkIterate(t, newStore) })
	t.Run("close before write", func(t *testing.T) { checkCloseBeforeWrite(t, newStore) })
}

func checkGetSet(t *testing.T, newStore StoreFactory) {
	db, release := newStore()
	defer release()

	k, v := []byte("alice"), []byte("100")
	expectValue(t, db, k, nil)
	db.Set(k, v)
	expectValue(t, db, k, v)

	cache := db.CacheWrap()
	expectValue(t, cache, k, v)
	cache.Delete(k)
	expectValue(t, cache, k, nil)
	expectValue(t, db, k, v)
	cache.Discard()
	expectValue(t, cache, k, v)

	cache.Set(k, []byte("40"))
	cache.Set([]byte("bob"), []byte("60"))
	expectValue(t, db, []byte("bob"), nil)
	cache.Write()
	expectValue(t, db, k, []byte("40"))
	expectValue(t, db, []byte("bob"), []byte("60"))

	db.Delete(k)
	expectValue(t, db, k, nil)
}

func checkNestedCaches(t *testing.T, newStore StoreFactory) {
	db, release := newStore()
	defer release()

	a, b := []byte("a"), []byte("b")
	db.Set(a, []byte("base"))

	outer := db.CacheWrap()
	outer.Set(b, []byte("outer"))
	inner := outer.CacheWrap()
	inner.Delete(a)
	inner.Set(b, []byte("inner"))

	expectValue(t, outer, a, []byte("base"))
	expectValue(t, outer, b, []byte("outer"))

	inner.Write()
	expectValue(t, outer, a, nil)
	expectValue(t, outer, b, []byte("inner"))
	expectValue(t, db, a, []byte("base"))
	expectValue(t, db, b, nil)

	outer.Write()
	expectValue(t, db, a, nil)
	expectValue(t, db, b, []byte("inner"))
}

// checkIterate applies random writes to a prefilled store through a cache
// and compares every iteration against a plain map.
func checkIterate(t *testing.T, newStore StoreFactory) {
	db, release := newStore()
	defer release()

	r := rand.New(rand.NewSource(42))
	key := func() []byte { return []byte(fmt.Sprintf("k%03d", r.Intn(120))) }

	want := make(map[string]string)
	for i := 0; i < 60; i++ {
		k, v := key(), fmt.Sprintf("base-%d", i)
		db.Set(k, []byte(v))
		want[string(k)] = v
	}

	cache := db.CacheWrap()
	for i := 0; i < 80; i++ {
		k := key()
		if r.Intn(3) == 0 {
			cache.Delete(k)
			delete(want, string(k))
			continue
		}
		v := fmt.Sprintf("cache-%d", i)
		cache.Set(k, []byte(v))
		want[string(k)] = v
	}

	ranges := [][2][]byte{
		{nil, nil},
		{[]byte("k030"), nil},
		{nil, []byte("k090")},
		{[]byte("k010"), []byte("k050")},
		{[]byte("k050"), []byte("k051")},
		{[]byte("x"), nil},
	}
	for _, rg := range ranges {
		expectRange(t, cache, want, rg[0], rg[1])
	}

	cache.Write()
	for _, rg := range ranges {
		expectRange(t, db, want, rg[0], rg[1])
	}
}

func checkCloseBeforeWrite(t *testing.T, newStore StoreFactory) {
	db, release := newStore()
	defer release()

	db.Set([]byte("a"), []byte("A"))
	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("B"))

	it := cache.Iterator(nil, nil)
	it.Close()
	rit := cache.ReverseIterator(nil, nil)
	rit.Close()

	cache.Delete([]byte("a"))
	cache.Write()
	expectValue(t, db, []byte("a"), nil)
	expectValue(t, db, []byte("b"), []byte("B"))
}

func expectValue(t *testing.T, db ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	if got := db.Get(key); !bytes.Equal(got, want) {
		t.Fatalf("%q: want %q, got %q", key, want, got)
	}
	if got := db.Has(key); got != (want != nil) {
		t.Fatalf("%q: want has %v, got %v", key, want != nil, got)
	}
}

func expectRange(t *testing.T, db ReadOnlyKVStore, model map[string]string, start, end []byte) {
	t.Helper()

	var keys []string
	for k := range model {
		if start != nil && k < string(start) {
			continue
		}
		if end != nil && k >= string(end) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	check := func(it Iterator, order []string) {
		t.Helper()
		defer it.Close()
		for _, k := range order {
			if !it.Valid() {
				t.Fatalf("[%q, %q): iterator ended before %q", start, end, k)
			}
			if got := string(it.Key()); got != k {
				t.Fatalf("[%q, %q): want key %q, got %q", start, end, k, got)
			}
			if got := string(it.Value()); got != model[k] {
				t.Fatalf("%q: want value %q, got %q", k, model[k], got)
			}
			it.Next()
		}
		if it.Valid() {
			t.Fatalf("[%q, %q): unexpected key %q", start, end, it.Key())
		}
	}

	check(db.Iterator(start, end), keys)
	reversed := make([]string, len(keys))
	for i, k := range keys {
		reversed[len(keys)-1-i] = k
	}
	check(db.ReverseIterator(start, end), reversed)
}
