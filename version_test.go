package fungible_test

import (
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/fungibletest/assert"
)

func TestVersion(t *testing.T) {
	fungible.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", fungible.Version())

	fungible.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", fungible.Version())
	fungible.GitCommit = ""
}
