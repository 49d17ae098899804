package fungible

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible/errors"
)

// Msg is the action a transaction asks for. Path selects the handler and
// must match [0-9A-Za-z_\-/]+. Validate checks what can be checked
// without reading the state.
type Msg interface {
	proto.Message
	Path() string
	Validate() error
}

// Tx is the decoded transaction: a message plus whatever the decorators
// need, signatures first of all.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath is the message path of tx, for logs.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into dest, a pointer to a message
// value, and validates it:
//
//   var msg ledger.TransferMsg
//   if err := fungible.LoadMsg(tx, &msg); err != nil {
//   	return nil, err
//   }
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "get message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	in := reflect.Indirect(reflect.ValueOf(msg))
	if want := out.Elem().Type(); in.Type() != want {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", want, msg)
	}
	out.Elem().Set(in)
	return errors.Wrap(msg.Validate(), "invalid message")
}
