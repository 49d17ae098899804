package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/fungibletest/assert"
	"github.com/iov-one/fungible/x"
)

func TestAuthenticators(t *testing.T) {
	a := fungibletest.NewCondition()
	b := fungibletest.NewCondition()
	c := fungibletest.NewCondition()

	cases := map[string]struct {
		auth     x.Authenticator
		wantMain fungible.Condition
		wantAll  []fungible.Condition
		missing  fungible.Condition
	}{
		"nobody signed": {
			auth:    &fungibletest.Auth{},
			missing: a,
		},
		"single signer": {
			auth:     &fungibletest.Auth{Signer: a},
			wantMain: a,
			wantAll:  []fungible.Condition{a},
			missing:  b,
		},
		"several signers": {
			auth:     &fungibletest.Auth{Signers: []fungible.Condition{b}, Signer: a},
			wantMain: b,
			wantAll:  []fungible.Condition{b, a},
			missing:  c,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			assert.Equal(t, tc.wantMain, x.MainSigner(ctx, tc.auth))
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(ctx))
			for _, cond := range tc.wantAll {
				if !tc.auth.HasAddress(ctx, cond.Address()) {
					t.Fatalf("%s not authenticated", cond)
				}
			}
			if tc.auth.HasAddress(ctx, tc.missing.Address()) {
				t.Fatalf("%s must not be authenticated", tc.missing)
			}
		})
	}
}

func TestAnyAddress(t *testing.T) {
	a := fungibletest.NewCondition()
	b := fungibletest.NewCondition()

	assert.Equal(t, false, x.AnyAddress(nil, a.Address()))
	assert.Equal(t, true, x.AnyAddress([]fungible.Condition{b, a}, a.Address()))
	assert.Equal(t, false, x.AnyAddress([]fungible.Condition{b}, a.Address()))
}
