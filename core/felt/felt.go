package felt

import (
	"errors"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt is a scalar in the STARK prime field
// (p = 2^251 + 17*2^192 + 1). Every value is kept fully reduced, so a
// Felt is always a canonical field member.
type Felt struct {
	val fp.Element
}

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Element
	Bits  = fp.Bits  // number of bits needed to represent a Element
	Bytes = fp.Bytes // number of bytes needed to represent a Element
)

var (
	Zero = Felt{}
	One  = *new(Felt).SetUint64(1)
)

var bigIntPool = sync.Pool{
	New: func() interface{} {
		return new(big.Int)
	},
}

func New(element fp.Element) Felt {
	return Felt{val: element}
}

// FromUint64 returns the felt representing v.
func FromUint64(v uint64) Felt {
	var f Felt
	f.val.SetUint64(v)
	return f
}

// FromBytesBE interprets b as a big-endian unsigned integer reduced
// modulo the field prime. For inputs of at most 31 bytes the value is
// below the modulus already and no reduction takes place.
func FromBytesBE(b []byte) Felt {
	var f Felt
	f.val.SetBytes(b)
	return f
}

// FromString parses a felt from a decimal or prefixed (0x, 0b, ...)
// string representation.
func FromString(s string) (Felt, error) {
	var f Felt
	if _, err := f.val.SetString(s); err != nil {
		return Felt{}, err
	}
	return f, nil
}

// Modulus returns the field prime as a big.Int.
func Modulus() *big.Int {
	return fp.Modulus()
}

// Impl returns the underlying field element type
func (z *Felt) Impl() *fp.Element {
	return &z.val
}

// UnmarshalJSON accepts numbers and strings as input.
// See Element.SetString for valid prefixes (0x, 0b, ...).
// If there is an error, we try to explicitly unmarshal from hex before
// returning an error. This implementation is taken from [gnark-crypto].
//
// [gnark-crypto]: https://github.com/ConsenSys/gnark-crypto/blob/9fd0a7de2044f088a29cfac373da73d868230148/ecc/stark-curve/fp/element.go#L1028-L1056
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > fp.Bits*3 {
		return errors.New("value too large (max = Element.Bits * 3)")
	}

	// we accept numbers and strings, remove leading and trailing quotes if any
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}

	// get temporary big int from the pool
	vv := bigIntPool.Get().(*big.Int)

	if _, ok := vv.SetString(s, 0); !ok {
		if _, ok := vv.SetString(s, 16); !ok {
			return errors.New("can't parse into a big.Int: " + s)
		}
	}

	z.val.SetBigInt(vv)

	// release object into pool
	bigIntPool.Put(vv)
	return nil
}

// MarshalJSON forwards the call to underlying field element implementation
func (z Felt) MarshalJSON() ([]byte, error) {
	return z.val.MarshalJSON()
}

// UnmarshalText parses a decimal or prefixed string, so a Felt can be
// used directly as a flag or config value.
func (z *Felt) UnmarshalText(text []byte) error {
	_, err := z.val.SetString(string(text))
	return err
}

func (z Felt) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// SetBytes forwards the call to underlying field element implementation
func (z *Felt) SetBytes(e []byte) *Felt {
	z.val.SetBytes(e)
	return z
}

// SetString forwards the call to underlying field element implementation
func (z *Felt) SetString(number string) (*Felt, error) {
	_, err := z.val.SetString(number)
	return z, err
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.val.SetUint64(v)
	return z
}

// String forwards the call to underlying field element implementation
func (z *Felt) String() string {
	return z.val.String()
}

// Text forwards the call to underlying field element implementation
func (z *Felt) Text(base int) string {
	return z.val.Text(base)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// Bytes forwards the call to underlying field element implementation
func (z *Felt) Bytes() [32]byte {
	return z.val.Bytes()
}

// BigInt stores the regular (non-Montgomery) value of z in res and
// returns res.
func (z *Felt) BigInt(res *big.Int) *big.Int {
	return z.val.BigInt(res)
}

// Uint64 returns the low limb of the regular value of z. Only
// meaningful when z fits in 64 bits.
func (z *Felt) Uint64() uint64 {
	return z.val.Uint64()
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// IsOne forwards the call to underlying field element implementation
func (z *Felt) IsOne() bool {
	return z.val.IsOne()
}

// Add forwards the call to underlying field element implementation
func (z *Felt) Add(x, y *Felt) *Felt {
	z.val.Add(&x.val, &y.val)
	return z
}

// Cmp forwards the call to underlying field element implementation
func (z *Felt) Cmp(x *Felt) int {
	return z.val.Cmp(&x.val)
}
