package orm_test

import (
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/fungibletest/assert"
	"github.com/iov-one/fungible/orm"
	"github.com/iov-one/fungible/store"
)

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := orm.NewModelBucket("amounts", &amount.Amount{})

	assert.Nil(t, b.Put(db, []byte("a"), amount.NewAmountp(1, 5)))
	assert.Nil(t, b.Put(db, []byte("b"), amount.NewAmountp(2, 0)))
	// overwrite
	assert.Nil(t, b.Put(db, []byte("b"), amount.NewAmountp(3, 0)))

	var a amount.Amount
	assert.Nil(t, b.One(db, []byte("a"), &a))
	assert.Equal(t, amount.NewAmount(1, 5), a)
	assert.Nil(t, b.One(db, []byte("b"), &a))
	assert.Equal(t, amount.NewAmount(3, 0), a)

	err := b.One(db, []byte("missing"), &a)
	assert.IsErr(t, errors.ErrNotFound, err)

	var m fungibletest.Msg
	err = b.One(db, []byte("a"), &m)
	assert.IsErr(t, errors.ErrType, err)
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := orm.NewModelBucket("amounts", &amount.Amount{})

	cases := map[string]struct {
		key     []byte
		model   orm.Model
		wantErr *errors.Error
	}{
		"valid": {
			key:   []byte("a"),
			model: amount.NewAmountp(1, 0),
		},
		"negative amount": {
			key:     []byte("a"),
			model:   amount.NewAmountp(-1, 0),
			wantErr: errors.ErrAmount,
		},
		"empty key": {
			key:     nil,
			model:   amount.NewAmountp(1, 0),
			wantErr: errors.ErrEmpty,
		},
		"wrong type": {
			key:     []byte("a"),
			model:   &fungibletest.Msg{RoutePath: "x"},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := b.Put(db, tc.key, tc.model)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestModelBucketHasDelete(t *testing.T) {
	db := store.MemStore()
	b := orm.NewModelBucket("amounts", &amount.Amount{})

	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("a")))

	assert.Nil(t, b.Put(db, []byte("a"), amount.NewAmountp(7, 0)))
	assert.Nil(t, b.Has(db, []byte("a")))
	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("a")))
}

func TestModelBucketPrefix(t *testing.T) {
	db := store.MemStore()
	b := orm.NewModelBucket("amounts", &amount.Amount{})
	other := orm.NewModelBucket("amountsx", &amount.Amount{})

	assert.Nil(t, b.Put(db, []byte("ab"), amount.NewAmountp(2, 0)))
	assert.Nil(t, b.Put(db, []byte("aa"), amount.NewAmountp(1, 0)))
	assert.Nil(t, b.Put(db, []byte("ba"), amount.NewAmountp(3, 0)))
	// must not leak into the first bucket
	assert.Nil(t, other.Put(db, []byte("aa"), amount.NewAmountp(9, 0)))

	var ptrs []*amount.Amount
	keys, err := b.Prefix(db, []byte("a"), &ptrs)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("aa"), []byte("ab")}, keys)
	assert.Equal(t, []*amount.Amount{amount.NewAmountp(1, 0), amount.NewAmountp(2, 0)}, ptrs)

	var vals []amount.Amount
	keys, err = b.Prefix(db, nil, &vals)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(keys))
	assert.Equal(t, []amount.Amount{
		amount.NewAmount(1, 0),
		amount.NewAmount(2, 0),
		amount.NewAmount(3, 0),
	}, vals)

	var msgs []fungibletest.Msg
	_, err = b.Prefix(db, nil, &msgs)
	assert.IsErr(t, errors.ErrType, err)

	_, err = b.Prefix(db, nil, vals)
	assert.IsErr(t, errors.ErrType, err)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := orm.NewModelBucket("amounts", &amount.Amount{})
	assert.Nil(t, b.Put(db, []byte("aa"), amount.NewAmountp(1, 0)))
	assert.Nil(t, b.Put(db, []byte("ab"), amount.NewAmountp(2, 0)))

	qr := fungible.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/amounts")
	if h == nil {
		t.Fatal("query handler not registered")
	}

	res, err := h.Query(db, fungible.KeyQueryMod, []byte("ab"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("amounts:ab"), res[0].Key)

	res, err = h.Query(db, fungible.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, fungible.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = h.Query(db, "regexp", []byte("a"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBucketNameMustBeValid(t *testing.T) {
	assert.Panics(t, func() { orm.NewBucket("A") })
	assert.Panics(t, func() { orm.NewBucket("with-dash") })
}
