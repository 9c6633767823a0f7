package felt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJson(t *testing.T) {
	var with Felt
	assert.NoError(t, with.UnmarshalJSON([]byte("0x4437ab")))

	var without Felt
	assert.NoError(t, without.UnmarshalJSON([]byte("4437ab")))
	assert.Equal(t, true, without.Equal(&with))
}

func TestUnmarshalText(t *testing.T) {
	var hex Felt
	require.NoError(t, hex.UnmarshalText([]byte("0xff")))

	var dec Felt
	require.NoError(t, dec.UnmarshalText([]byte("255")))
	assert.True(t, hex.Equal(&dec))

	var bad Felt
	assert.Error(t, bad.UnmarshalText([]byte("not a number")))
}

func TestFromBytesBE(t *testing.T) {
	t.Run("short input is not reduced", func(t *testing.T) {
		chunk := make([]byte, 31)
		for i := range chunk {
			chunk[i] = 0xff
		}
		f := FromBytesBE(chunk)

		want := new(big.Int).Lsh(big.NewInt(1), 31*8)
		want.Sub(want, big.NewInt(1))
		assert.Equal(t, 0, f.BigInt(new(big.Int)).Cmp(want))
	})

	t.Run("32 byte input wraps modulo p", func(t *testing.T) {
		modBytes := Modulus().Bytes()
		f := FromBytesBE(modBytes)
		assert.True(t, f.IsZero())
	})
}

func TestFromUint64(t *testing.T) {
	f := FromUint64(42)
	assert.Equal(t, uint64(42), f.Uint64())
	assert.Equal(t, "2a", f.Text(16))
}

func TestAddCmp(t *testing.T) {
	a := FromUint64(100)
	b := FromUint64(1)

	var sum Felt
	sum.Add(&a, &b)
	assert.Equal(t, uint64(101), sum.Uint64())
	assert.Equal(t, 1, sum.Cmp(&a))
	assert.Equal(t, -1, a.Cmp(&sum))
}

func TestConstants(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.True(t, One.IsOne())
	assert.Greater(t, Modulus().BitLen(), 251)
}
