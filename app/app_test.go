package app

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/orm"
	"github.com/iov-one/fungible/store/iavl"
	"github.com/iov-one/fungible/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// pathDecoder turns the raw bytes into a message routed by that path.
func pathDecoder(raw []byte) (fungible.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	if string(raw) == "panic" {
		panic("cannot decode")
	}
	return &fungibletest.Tx{Msg: &fungibletest.Msg{RoutePath: string(raw)}}, nil
}

func newTestApp(t testing.TB) *BaseApp {
	t.Helper()

	router := NewRouter()
	router.Handle("test/write", &fungibletest.WriteHandler{Key: []byte("written"), Value: []byte("yes")})
	router.Handle("test/fail", &fungibletest.WriteHandler{Key: []byte("failed"), Value: []byte("yes"), Err: errors.ErrAmount})

	stack := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(router)

	qr := fungible.NewQueryRouter()
	qr.RegisterAll(orm.RegisterQuery)

	a, err := NewBaseApp("test", iavl.NewCommitStore("", "app"), qr, pathDecoder, stack, false)
	require.NoError(t, err)
	require.NoError(t, a.loadAppState([]byte(`{}`), "test-chain"))
	return a
}

func TestBaseApp(t *testing.T) {
	myApp := newTestApp(t)
	assert.Equal(t, "test-chain", myApp.ChainID())

	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	cres := myApp.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), cres.Code, cres.Log)
	dres := myApp.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), dres.Code, dres.Log)

	// failed transactions leave no trace
	dres = myApp.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrAmount.ABCICode(), dres.Code)

	// unknown paths are rejected by the router
	dres = myApp.DeliverTx([]byte("test/missing"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), dres.Code)

	// decoder errors and panics are reported
	cres = myApp.CheckTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), cres.Code)
	dres = myApp.DeliverTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), dres.Code)

	myApp.EndBlock(abci.RequestEndBlock{})
	commit := myApp.Commit()
	assert.NotEmpty(t, commit.Data)

	info := myApp.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "test", info.Data)

	qres := myApp.Query(abci.RequestQuery{Path: "/", Data: []byte("written")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	assert.Equal(t, int64(1), qres.Height)
	var vals ResultSet
	require.NoError(t, proto.Unmarshal(qres.Value, &vals))
	assert.Equal(t, [][]byte{[]byte("yes")}, vals.Results)

	qres = myApp.Query(abci.RequestQuery{Path: "/", Data: []byte("failed")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	require.NoError(t, proto.Unmarshal(qres.Value, &vals))
	assert.Empty(t, vals.Results)

	qres = myApp.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)
}

func TestInitChain(t *testing.T) {
	a := newEmptyApp(t)
	a.WithInit(dummyInit{})

	a.InitChain(abci.RequestInitChain{
		ChainId:       "init-chain",
		AppStateBytes: []byte(`{"dummy": "hello"}`),
	})
	assert.Equal(t, "init-chain", a.ChainID())
	assert.Equal(t, []byte("hello"), a.DeliverStore().Get([]byte(dummyKey)))

	// chain id cannot change and missing state is fatal
	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "other-chain", AppStateBytes: []byte(`{}`)})
	})
	fresh := newEmptyApp(t)
	assert.Panics(t, func() {
		fresh.InitChain(abci.RequestInitChain{ChainId: "init-chain"})
	})
}

// TestRestartKeepsState reopens the same database and expects the height
// and the chain id of the previous run.
func TestRestartKeepsState(t *testing.T) {
	dir, err := ioutil.TempDir("", "app-restart-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	open := func() (*BaseApp, iavl.CommitStore) {
		kv := iavl.NewCommitStore(dir, "state")
		a, err := NewBaseApp("test", kv, fungible.NewQueryRouter(), pathDecoder, &fungibletest.Handler{}, false)
		require.NoError(t, err)
		return a, kv
	}

	a, kv := open()
	require.NoError(t, a.loadAppState([]byte(`{}`), "restart-chain"))
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	res := a.Commit()
	kv.Close()

	b, kv := open()
	defer kv.Close()
	assert.Equal(t, "restart-chain", b.ChainID())
	info := b.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, res.Data, info.LastBlockAppHash)
}

func TestStateCommit(t *testing.T) {
	st, err := loadState(iavl.NewCommitStore("", "commit"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.last().Version)

	st.deliver.Set([]byte("deliver"), []byte("1"))
	st.check.Set([]byte("check"), []byte("1"))
	id := st.commit()
	assert.Equal(t, int64(1), id.Version)

	// check writes never reach the committed store
	assert.Equal(t, []byte("1"), st.committed.Get([]byte("deliver")))
	assert.Nil(t, st.committed.Get([]byte("check")))
	assert.Equal(t, []byte("1"), st.check.Get([]byte("deliver")))
	assert.Nil(t, st.check.Get([]byte("check")))
	assert.Equal(t, id, st.last())
}

func newEmptyApp(t testing.TB) *BaseApp {
	t.Helper()
	a, err := NewBaseApp("test", iavl.NewCommitStore("", "app"), fungible.NewQueryRouter(), pathDecoder, &fungibletest.Handler{}, false)
	require.NoError(t, err)
	return a
}
