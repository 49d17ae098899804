package fungible

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopQueryHandler struct{}

func (nopQueryHandler) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return nil, nil
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.RegisterAll(
		func(qr QueryRouter) { qr.Register("/accounts", nopQueryHandler{}) },
		func(qr QueryRouter) { qr.Register("/outbox", nopQueryHandler{}) },
	)
	assert.NotNil(t, r.Handler("/accounts"))
	assert.NotNil(t, r.Handler("/outbox"))
	assert.Nil(t, r.Handler("/unknown"))
	assert.Panics(t, func() { r.Register("/accounts", nopQueryHandler{}) })
}

func TestSplitQueryPath(t *testing.T) {
	cases := map[string]struct {
		path     string
		wantPath string
		wantMod  string
	}{
		"key query":    {path: "/accounts", wantPath: "/accounts", wantMod: KeyQueryMod},
		"prefix query": {path: "/accounts?prefix", wantPath: "/accounts", wantMod: PrefixQueryMod},
		"empty mod":    {path: "/accounts?", wantPath: "/accounts", wantMod: ""},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path, mod := SplitQueryPath(tc.path)
			assert.Equal(t, tc.wantPath, path)
			assert.Equal(t, tc.wantMod, mod)
		})
	}
}
