package fungible_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err     error
		debug   bool
		wantLog string
		code    uint32
	}{
		"registered error": {
			err:     errors.Wrap(errors.ErrUnauthorized, "no signature"),
			wantLog: "no signature: unauthorized",
			code:    2,
		},
		"stdlib error is redacted": {
			err:     fmt.Errorf("base"),
			wantLog: "internal error",
			code:    1,
		},
		"stdlib error in debug mode": {
			err:     fmt.Errorf("base"),
			debug:   true,
			wantLog: "base",
			code:    1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := fungible.DeliverTxError(tc.err, tc.debug)
			assert.True(t, dres.IsErr())
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx: "+tc.wantLog))
			assert.Equal(t, tc.code, dres.Code)

			cres := fungible.CheckTxError(tc.err, tc.debug)
			assert.True(t, cres.IsErr())
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx: "+tc.wantLog))
			assert.Equal(t, tc.code, cres.Code)
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := &fungible.DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)

	cres := &fungible.CheckResult{Log: "aok"}
	ac := cres.ToABCI()
	assert.Equal(t, "aok", ac.Log)
	assert.Empty(t, ac.Data)
}

func TestParseDeliverOrError(t *testing.T) {
	res := fungible.DeliverOrError(nil, errors.Wrap(errors.ErrNotFound, "account"), false)
	_, err := fungible.ParseDeliverOrError(res)
	assert.True(t, errors.ErrNotFound.Is(err))

	res = fungible.DeliverOrError(&fungible.DeliverResult{Data: []byte("ok")}, nil, false)
	got, err := fungible.ParseDeliverOrError(res)
	assert.NoError(t, err)
	assert.Equal(t, []byte("ok"), got.Data)
}
