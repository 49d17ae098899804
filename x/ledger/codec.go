package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
)

func init() {
	proto.RegisterType((*Account)(nil), "ledger.Account")
	proto.RegisterType((*ChainAccount)(nil), "ledger.ChainAccount")
	proto.RegisterType((*TransferMsg)(nil), "ledger.TransferMsg")
	proto.RegisterType((*CreditMsg)(nil), "ledger.CreditMsg")
}

// Account is the stored state of a single ledger account. The owner
// address is the key it is stored under.
type Account struct {
	Balance *amount.Amount `protobuf:"bytes,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// ChainAccount points to an account on a given chain.
type ChainAccount struct {
	ChainID string           `protobuf:"bytes,1,opt,name=chain_id,json=chainId,proto3" json:"chain_id,omitempty"`
	Owner   fungible.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/fungible.Address" json:"owner,omitempty"`
}

func (m *ChainAccount) Reset()         { *m = ChainAccount{} }
func (m *ChainAccount) String() string { return proto.CompactTextString(m) }
func (*ChainAccount) ProtoMessage()    {}

// TransferMsg moves tokens owned by Owner to the Target account, which may
// live on another chain.
type TransferMsg struct {
	Owner  fungible.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/fungible.Address" json:"owner,omitempty"`
	Amount *amount.Amount   `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Target *ChainAccount    `protobuf:"bytes,3,opt,name=target,proto3" json:"target,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// CreditMsg is sent between chains and adds Amount to the Owner account
// of the receiving chain.
type CreditMsg struct {
	Owner  fungible.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/fungible.Address" json:"owner,omitempty"`
	Amount *amount.Amount   `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *CreditMsg) Reset()         { *m = CreditMsg{} }
func (m *CreditMsg) String() string { return proto.CompactTextString(m) }
func (*CreditMsg) ProtoMessage()    {}
