package app

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/app"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/crypto/bech32"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x/ledger"
	"github.com/iov-one/fungible/x/relay"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// defaultAmount is given to the genesis owner when no amount is passed.
const defaultAmount = "1000000"

// GenInitOptions will produce the app state with a single funded owner,
// to use for dev mode.
//
// Arguments are [owner address] [amount] [chain_id:peer_pubkey_hex ...].
// Without an owner a new key is generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner fungible.Address
	if len(args) > 0 {
		addr, err := fungible.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner")
		}
		owner = addr
	} else {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(keys)
	}

	amt := amount.MustParse(defaultAmount)
	if len(args) > 1 {
		a, err := amount.Parse(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "amount")
		}
		amt = a
	}

	var peers []relay.GenesisPeer
	if len(args) > 2 {
		for _, p := range args[2:] {
			chunks := strings.SplitN(p, ":", 2)
			if len(chunks) != 2 {
				return nil, errors.Wrapf(errors.ErrInput, "peer %q, expected chain_id:pubkey", p)
			}
			peers = append(peers, relay.GenesisPeer{ChainID: chunks[0], Pubkey: chunks[1]})
		}
	}

	state := struct {
		Ledger ledger.Genesis `json:"ledger"`
		Relay  relay.Genesis  `json:"relay"`
	}{
		Ledger: ledger.Genesis{Owner: owner, Amount: amt},
		Relay:  relay.Genesis{Peers: peers},
	}
	return json.MarshalIndent(state, "", "  ")
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() fungible.Initializer {
	return app.ChainInitializers(
		&ledger.Initializer{},
		&relay.Initializer{},
	)
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "fungible.db")
	}

	application, err := Application("fungibled", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a new public key,
// along with a json representation of the keys.
func GenerateCoinKey() (fungible.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	keys, err := encodeKey(privKey)
	if err != nil {
		return nil, "", err
	}
	return privKey.PublicKey().Address(), keys, nil
}

func encodeKey(privKey *crypto.PrivateKey) (string, error) {
	out := output{Pubkey: privKey.PublicKey(), Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return string(keys), nil
}

// KeysCmd writes a key to a file and prints its address, in hex and
// bech32, and its hex public key. Register the public key as a relay peer on the chains this key
// relays to.
//
//   keys [-seed <hex>] [-path m/44'/234'/0'] <file>
//
// With a seed the key is derived, so it can be restored from the seed.
// Without one it is random.
func KeysCmd(args []string) error {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	seedHex := fs.String("seed", "", "hex encoded master seed")
	path := fs.String("path", crypto.DefaultKeyPath, "derivation path, used with -seed")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if fs.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "usage: keys [-seed <hex>] [-path <path>] <file>")
	}

	key := crypto.GenPrivKeyEd25519()
	if *seedHex != "" {
		seed, err := hex.DecodeString(*seedHex)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "seed is not hex")
		}
		if key, err = crypto.DeriveKey(seed, *path); err != nil {
			return err
		}
	}
	keys, err := encodeKey(key)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(fs.Arg(0), []byte(keys), 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr := key.PublicKey().Address()
	bech, err := addr.Bech32(bech32.DefaultHRP)
	if err != nil {
		return err
	}
	fmt.Println("address:", addr)
	fmt.Println("bech32: ", bech)
	fmt.Println("pubkey: ", hex.EncodeToString(key.PublicKey().Ed25519))
	return nil
}

// LoadKey reads a private key written by KeysCmd.
func LoadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read key: %s", err)
	}
	var out output
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode key: %s", err)
	}
	if out.Secret == nil || len(out.Secret.Ed25519) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "secret")
	}
	return out.Secret, nil
}
