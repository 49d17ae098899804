package ledger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/fungibletest/assert"
	"github.com/iov-one/fungible/store"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLedgerBalanceDefaultsToZero(t *testing.T) {
	db := store.MemStore()
	l := NewLedger()

	got, err := l.Balance(db, fungibletest.NewAddress())
	assert.Nil(t, err)
	assert.Equal(t, amount.Amount{}, got)
}

func TestLedgerInitialize(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	l := NewLedger()
	owner := fungibletest.NewAddress()

	assert.Nil(t, l.Initialize(ctx, db, owner, amount.NewAmount(1000, 0)))
	got, err := l.Balance(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, amount.NewAmount(1000, 0), got)

	err = l.Initialize(ctx, db, fungibletest.NewAddress(), amount.NewAmount(5, 0))
	assert.IsErr(t, ErrAlreadyInitialized, err)
	accounts, err := l.Accounts(db)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(accounts))

	// a bad owner does not mark the ledger as initialized
	fresh := store.MemStore()
	err = l.Initialize(ctx, fresh, fungible.Address("short"), amount.NewAmount(1, 0))
	assert.IsErr(t, errors.ErrInput, err)
	assert.Nil(t, l.Initialize(ctx, fresh, owner, amount.NewAmount(1, 0)))
}

func TestLedgerDebit(t *testing.T) {
	owner := fungibletest.NewAddress()

	cases := map[string]struct {
		initial amount.Amount
		debit   amount.Amount
		wantErr *errors.Error
		want    amount.Amount
	}{
		"partial": {
			initial: amount.NewAmount(1000, 0),
			debit:   amount.NewAmount(300, 0),
			want:    amount.NewAmount(700, 0),
		},
		"everything": {
			initial: amount.NewAmount(1000, 5),
			debit:   amount.NewAmount(1000, 5),
			want:    amount.NewAmount(0, 0),
		},
		"fractional borrow": {
			initial: amount.NewAmount(2, 0),
			debit:   amount.NewAmount(0, 500000000),
			want:    amount.NewAmount(1, 500000000),
		},
		"overdraft leaves balance unchanged": {
			initial: amount.NewAmount(10, 0),
			debit:   amount.NewAmount(10, 1),
			wantErr: ErrInsufficientBalance,
			want:    amount.NewAmount(10, 0),
		},
		"absent account": {
			debit:   amount.NewAmount(1, 0),
			wantErr: ErrInsufficientBalance,
			want:    amount.NewAmount(0, 0),
		},
		"negative whole": {
			initial: amount.NewAmount(10, 0),
			debit:   amount.NewAmount(-5, 0),
			wantErr: errors.ErrAmount,
			want:    amount.NewAmount(10, 0),
		},
		"negative fraction": {
			initial: amount.NewAmount(10, 0),
			debit:   amount.NewAmount(0, -3),
			wantErr: errors.ErrAmount,
			want:    amount.NewAmount(10, 0),
		},
		"fraction out of range": {
			initial: amount.NewAmount(10, 0),
			debit:   amount.NewAmount(0, amount.FracUnit),
			wantErr: errors.ErrAmount,
			want:    amount.NewAmount(10, 0),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			l := NewLedger()
			if !tc.initial.IsZero() {
				assert.Nil(t, l.Initialize(ctx, db, owner, tc.initial))
			}
			err := l.Debit(ctx, db, owner, tc.debit)
			assert.IsErr(t, tc.wantErr, err)

			got, err := l.Balance(db, owner)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLedgerCreditSaturates(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	l := NewLedger()
	owner := fungibletest.NewAddress()

	assert.Nil(t, l.Credit(ctx, db, owner, amount.NewAmount(7, 0)))
	assert.Nil(t, l.Credit(ctx, db, owner, amount.NewAmount(3, 0)))
	got, err := l.Balance(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, amount.NewAmount(10, 0), got)

	assert.Nil(t, l.Credit(ctx, db, owner, amount.Max()))
	got, err = l.Balance(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, amount.Max(), got)
}

func TestLedgerRejectsInvalidAmounts(t *testing.T) {
	invalid := map[string]amount.Amount{
		"negative whole":    amount.NewAmount(-5, 0),
		"negative fraction": amount.NewAmount(0, -3),
		"whole too big":     amount.NewAmount(amount.MaxWhole+1, 0),
		"fraction too big":  amount.NewAmount(0, amount.FracUnit),
	}

	for testName, amt := range invalid {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			l := NewLedger()
			owner := fungibletest.NewAddress()

			err := l.Initialize(ctx, db, owner, amt)
			assert.IsErr(t, errors.ErrAmount, err)
			// the failed call does not use up the initialization
			assert.Nil(t, l.Initialize(ctx, db, owner, amount.NewAmount(10, 0)))

			err = l.Credit(ctx, db, owner, amt)
			assert.IsErr(t, errors.ErrAmount, err)
			err = l.Debit(ctx, db, owner, amt)
			assert.IsErr(t, errors.ErrAmount, err)

			got, err := l.Balance(db, owner)
			assert.Nil(t, err)
			assert.Equal(t, amount.NewAmount(10, 0), got)
		})
	}
}

func TestLedgerBalanceIsIdempotent(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	l := NewLedger()
	owner := fungibletest.NewAddress()
	assert.Nil(t, l.Initialize(ctx, db, owner, amount.NewAmount(42, 7)))

	for i := 0; i < 5; i++ {
		got, err := l.Balance(db, owner)
		assert.Nil(t, err)
		assert.Equal(t, amount.NewAmount(42, 7), got)

		got, err = l.Balance(db, fungibletest.NewAddress())
		assert.Nil(t, err)
		assert.Equal(t, amount.Amount{}, got)
	}
	accounts, err := l.Accounts(db)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(accounts))
}

func TestLedgerAccountsAreOrdered(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	l := NewLedger()

	a := fungible.Address(bytes.Repeat([]byte{0xaa}, fungible.AddressLength))
	b := fungible.Address(bytes.Repeat([]byte{0x0b}, fungible.AddressLength))
	assert.Nil(t, l.Credit(ctx, db, a, amount.NewAmount(1, 0)))
	assert.Nil(t, l.Credit(ctx, db, b, amount.NewAmount(2, 0)))

	accounts, err := l.Accounts(db)
	assert.Nil(t, err)
	assert.Equal(t, []AccountBalance{
		{Owner: b, Balance: amount.NewAmount(2, 0)},
		{Owner: a, Balance: amount.NewAmount(1, 0)},
	}, accounts)
}

func TestLedgerLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := fungible.WithLogger(context.Background(), logger)
	db := store.MemStore()
	l := NewLedger()
	owner := fungibletest.NewAddress()

	assert.Nil(t, l.Initialize(ctx, db, owner, amount.NewAmount(10, 0)))
	assert.Nil(t, l.Credit(ctx, db, owner, amount.NewAmount(2, 0)))
	assert.Nil(t, l.Debit(ctx, db, owner, amount.NewAmount(3, 0)))

	out := buf.String()
	for _, want := range []string{"initialize", "credit", "debit", owner.String(), "amount=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output does not contain %q:\n%s", want, out)
		}
	}
}
