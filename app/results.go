package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// ResultSet contains a list of keys or values returned by a query.
// Query responses always carry two of them, the keys and the values, of
// equal length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func init() {
	proto.RegisterType((*ResultSet)(nil), "app.ResultSet")
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []fungible.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []fungible.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// UnmarshalOneResult decodes the first entry of a serialized ResultSet
// into o. An empty set leaves o untouched and is not an error.
func UnmarshalOneResult(bz []byte, o proto.Message) error {
	var res ResultSet
	if err := proto.Unmarshal(bz, &res); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return nil
	}
	if err := proto.Unmarshal(res.Results[0], o); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
