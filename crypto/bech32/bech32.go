/*
Package bech32 converts account addresses to and from their bech32 form,
for example "fung1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5wsrls0". The human
readable part names the network and is not checked on decoding.
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/fungible/errors"
)

// DefaultHRP is the human readable part used by the command line tools.
const DefaultHRP = "fung"

// Decode returns the human readable part and the address bytes of a
// bech32 string. Any malformed input is ErrInput.
func Decode(raw string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "payload: %s", err)
	}
	return hrp, payload, nil
}

// Encode returns the bech32 form of payload under the given human
// readable part.
func Encode(hrp string, payload []byte) (string, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "payload: %s", err)
	}
	s, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return s, nil
}
