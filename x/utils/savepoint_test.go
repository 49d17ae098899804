package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/store"
)

func TestSavepoint(t *testing.T) {
	debit := []byte("debit")

	cases := map[string]struct {
		save     Savepoint
		deliver  bool
		fail     bool
		wantKept bool
	}{
		"inactive keeps writes of a failed check": {NewSavepoint(), false, true, true},
		"check rolls back":                        {NewSavepoint().OnCheck(), false, true, false},
		"deliver rolls back":                      {NewSavepoint().OnDeliver(), true, true, false},
		"both enabled":                            {NewSavepoint().OnDeliver().OnCheck(), true, true, false},
		"check only leaves deliver alone":         {NewSavepoint().OnCheck(), true, true, true},
		"deliver only leaves check alone":         {NewSavepoint().OnDeliver(), false, true, true},
		"success is written":                      {NewSavepoint().OnCheck().OnDeliver(), true, false, true},
		"checked success is written":              {NewSavepoint().OnCheck(), false, false, true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			db.Set([]byte("genesis"), []byte("1"))
			h := &fungibletest.WriteHandler{Key: debit, Value: []byte("5")}
			if tc.fail {
				h.Err = errors.ErrInsufficientAmount
			}

			var err error
			if tc.deliver {
				_, err = tc.save.Deliver(context.Background(), db, nil, h)
			} else {
				_, err = tc.save.Check(context.Background(), db, nil, h)
			}
			assert.Equal(t, tc.fail, err != nil)
			assert.Equal(t, tc.wantKept, db.Has(debit))
			assert.True(t, db.Has([]byte("genesis")))
		})
	}
}

func TestSavepointWithoutCache(t *testing.T) {
	db := store.MemStore()
	plain := struct{ fungible.KVStore }{db}

	h := &fungibletest.WriteHandler{Key: []byte("k"), Value: []byte("v"), Err: errors.ErrState}
	_, err := NewSavepoint().OnDeliver().Deliver(context.Background(), plain, nil, h)
	assert.True(t, errors.ErrState.Is(err))
	assert.True(t, db.Has([]byte("k")))
}
