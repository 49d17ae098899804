package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requireKeyInit struct {
	key string
}

func (r requireKeyInit) FromGenesis(opts fungible.Options, db fungible.KVStore) error {
	var v string
	if err := opts.ReadOptions(r.key, &v); err != nil {
		return err
	}
	if v == "" {
		return errors.Wrapf(errors.ErrEmpty, "%s not set", r.key)
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "fungible-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, ioutil.WriteFile(good, []byte(`{"app_state": {"name": "x"}}`), 0600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, ioutil.WriteFile(bad, []byte(`{"app_state": {}}`), 0600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, ioutil.WriteFile(broken, []byte(`{"app_state": `), 0600))

	ini := requireKeyInit{key: "name"}
	assert.NoError(t, ValidateGenesis(ini, []string{good}))
	assert.True(t, errors.ErrEmpty.Is(ValidateGenesis(ini, []string{good, bad})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{broken})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{filepath.Join(dir, "missing.json")})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, nil)))
}
