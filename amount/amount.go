/*
Package amount implements the single fungible asset value.

An Amount is a non-negative fixed point number with nine fractional digits
and a defined maximum. Addition saturates at the maximum instead of
overflowing, subtraction fails instead of going below zero.
*/
package amount

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible/errors"
)

const (
	// MaxWhole is the largest whole value we accept
	MaxWhole int64 = 999999999999999 // 10^15-1

	// FracUnit is the smallest numbers we divide by
	FracUnit int64 = 1000000000 // fractional units = 10^9
	// MaxFrac is the highest possible fractional value
	MaxFrac = FracUnit - 1

	fracDigits = 9
)

func init() {
	proto.RegisterType((*Amount)(nil), "amount.Amount")
}

// Amount is a quantity of the ledger asset.
type Amount struct {
	// Whole units, 0 <= whole < 10^15
	Whole int64 `protobuf:"varint,1,opt,name=whole,proto3" json:"whole,omitempty"`
	// Billionth of a unit, 0 <= fractional < 10^9
	Fractional int64 `protobuf:"varint,2,opt,name=fractional,proto3" json:"fractional,omitempty"`
}

func (m *Amount) Reset()      { *m = Amount{} }
func (*Amount) ProtoMessage() {}

// NewAmount creates a new amount object. Use Validate to ensure the values
// are in range.
func NewAmount(whole, fractional int64) Amount {
	return Amount{
		Whole:      whole,
		Fractional: fractional,
	}
}

// NewAmountp returns a pointer to a new amount.
func NewAmountp(whole, fractional int64) *Amount {
	a := NewAmount(whole, fractional)
	return &a
}

// Max returns the largest representable amount.
func Max() Amount {
	return Amount{Whole: MaxWhole, Fractional: MaxFrac}
}

// SaturatingAdd returns the sum of both amounts. If the sum exceeds the
// maximum representable value, the maximum is returned. Both amounts must
// be valid.
func (a Amount) SaturatingAdd(o Amount) Amount {
	whole := a.Whole + o.Whole
	frac := a.Fractional + o.Fractional
	if frac > MaxFrac {
		whole++
		frac -= FracUnit
	}
	// Both whole parts are at most MaxWhole so the sum cannot overflow
	// int64.
	if whole > MaxWhole {
		return Max()
	}
	return Amount{Whole: whole, Fractional: frac}
}

// CheckedSub returns the difference of both amounts. It fails with
// ErrInsufficientAmount if the subtrahend is greater than the amount and
// with ErrAmount if the subtrahend is not a valid amount. The result is
// never negative and the amount is never clamped.
func (a Amount) CheckedSub(o Amount) (Amount, error) {
	if err := o.Validate(); err != nil {
		return Amount{}, errors.Wrap(errors.ErrAmount, err.Error())
	}
	if a.Compare(o) < 0 {
		return Amount{}, errors.Wrapf(errors.ErrInsufficientAmount, "cannot subtract %s from %s", o, a)
	}
	whole := a.Whole - o.Whole
	frac := a.Fractional - o.Fractional
	if frac < 0 {
		whole--
		frac += FracUnit
	}
	return Amount{Whole: whole, Fractional: frac}, nil
}

// Compare will check values of two amounts.
// It assumes they were already normalized.
//
// Returns 1 if a is larger, -1 if o is larger, 0 if equal
func (a Amount) Compare(o Amount) int {
	if a.Whole > o.Whole {
		return 1
	}
	if a.Whole < o.Whole {
		return -1
	}
	// same integer, compare fractional
	if a.Fractional > o.Fractional {
		return 1
	}
	if a.Fractional < o.Fractional {
		return -1
	}
	return 0
}

// Equals returns true if all fields are identical
func (a Amount) Equals(o Amount) bool {
	return a.Whole == o.Whole && a.Fractional == o.Fractional
}

// IsZero returns true amounts are 0
func (a Amount) IsZero() bool {
	return a.Whole == 0 && a.Fractional == 0
}

// IsPositive returns true if the value is greater than 0
func (a Amount) IsPositive() bool {
	return a.Whole > 0 ||
		(a.Whole == 0 && a.Fractional > 0)
}

// IsEmpty returns true on null or zero amount
func IsEmpty(a *Amount) bool {
	return a == nil || a.IsZero()
}

// Clone provides an independent copy of an amount pointer
func (a *Amount) Clone() *Amount {
	if a == nil {
		return nil
	}
	return &Amount{
		Whole:      a.Whole,
		Fractional: a.Fractional,
	}
}

// Validate ensures that the amount is not negative and in the valid range.
func (a Amount) Validate() error {
	var err error
	if a.Whole < 0 || a.Fractional < 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "negative"))
	}
	if a.Whole > MaxWhole {
		err = errors.Append(err, errors.ErrOverflow)
	}
	if a.Fractional > MaxFrac {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	return err
}

// String provides a human readable representation of the amount. For a
// valid amount the result can be parsed back with Parse.
func (a Amount) String() string {
	var b bytes.Buffer

	io.WriteString(&b, strconv.FormatInt(a.Whole, 10))

	if f := a.Fractional; f != 0 {
		if f < 0 {
			f = -f
		}
		s := strconv.FormatInt(f, 10)
		// Add leading zeros to convert it to a decimal fraction.
		s = "." + strings.Repeat("0", fracDigits-len(s)) + s
		// Remove trailing zeros as they provide no information.
		s = strings.TrimRight(s, "0")

		io.WriteString(&b, s)
	}

	return b.String()
}

var humanFormatRx = regexp.MustCompile(`^(\d+)(?:\.(\d{1,9}))?$`)

// Parse reads a human readable amount representation. Accepted format
// is a string:
//   "<whole>[.<fractional>]"
// with at most nine fractional digits. Parsing is exact.
func Parse(h string) (Amount, error) {
	m := humanFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "invalid format %q", h)
	}

	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || whole > MaxWhole {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "whole value %q", m[1])
	}

	var frac int64
	if m[2] != "" {
		// Pad right so that "5" stands for 0.5 and not 0.000000005.
		digits := m[2] + strings.Repeat("0", fracDigits-len(m[2]))
		frac, err = strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return Amount{}, errors.Wrapf(errors.ErrAmount, "fractional value %q", m[2])
		}
	}
	return Amount{Whole: whole, Fractional: frac}, nil
}

// MustParse is like Parse, but panics on invalid input. Use it only for
// constants.
func MustParse(h string) Amount {
	a, err := Parse(h)
	if err != nil {
		panic(err)
	}
	return a
}

// Set implements flag.Value.
func (a *Amount) Set(h string) error {
	parsed, err := Parse(h)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON serializes the amount as a human readable string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format that is a string in format
	// "<whole>[.<fractional>]"
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		return a.Set(human)
	}

	// A plain JSON number is a whole value.
	var whole int64
	if err := json.Unmarshal(raw, &whole); err == nil {
		parsed := Amount{Whole: whole}
		if err := parsed.Validate(); err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	// Fallback into the default unmarshaling. Because UnmarshalJSON method
	// is provided, we can no longer use Amount type for this.
	var amount struct {
		Whole      int64
		Fractional int64
	}
	if err := json.Unmarshal(raw, &amount); err != nil {
		return errors.Wrap(errors.ErrAmount, "cannot decode json")
	}
	parsed := Amount{Whole: amount.Whole, Fractional: amount.Fractional}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*a = parsed
	return nil
}
