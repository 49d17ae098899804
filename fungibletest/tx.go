package fungibletest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg fungible.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ fungible.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (fungible.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message routed by path.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string `protobuf:"bytes,1,opt,name=route_path,json=routePath,proto3" json:"route_path,omitempty"`
	// Serialized is an opaque payload.
	Serialized []byte `protobuf:"bytes,2,opt,name=serialized,proto3" json:"serialized,omitempty"`
}

var _ fungible.Msg = (*Msg)(nil)

func init() {
	proto.RegisterType((*Msg)(nil), "fungibletest.Msg")
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return proto.CompactTextString(m) }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

// Validate requires a route path.
func (m *Msg) Validate() error {
	if m.RoutePath == "" {
		return errors.Wrap(errors.ErrEmpty, "route path")
	}
	return nil
}
