package relay_test

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/ethrelay/core/felt"
	"github.com/NethermindEth/ethrelay/relay"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withSignature attaches a crafted (r, s, parity) signature so the
// resulting v value is deterministic; the signature does not need to
// recover for the felt conversion to be exercised.
func withSignature(t *testing.T, signer types.Signer, inner types.TxData, r, s *big.Int, parity byte) *types.Transaction {
	t.Helper()

	sig := make([]byte, 65)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[64] = parity

	tx, err := types.NewTx(inner).WithSignature(signer, sig)
	require.NoError(t, err)
	return tx
}

// reassemble recombines big-endian 128-bit halves: high*2^128 + low.
func reassemble(high, low *felt.Felt) *big.Int {
	x := high.BigInt(new(big.Int))
	return x.Add(x.Lsh(x, 128), low.BigInt(new(big.Int)))
}

func TestSignatureFelts(t *testing.T) {
	// r spans both 128-bit halves, s only the low one.
	r, ok := new(big.Int).SetString("0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20", 0)
	require.True(t, ok)
	s, ok := new(big.Int).SetString("0xcafebabe", 0)
	require.True(t, ok)

	legacyInner := &types.LegacyTx{GasPrice: big.NewInt(10), Gas: 21_000, To: &testAddr}

	t.Run("r and s split losslessly", func(t *testing.T) {
		tx := withSignature(t, types.NewEIP155Signer(big.NewInt(1)), legacyInner, r, s, 0)
		felts := relay.SignatureFelts(tx)

		assert.Equal(t, 0, r.Cmp(reassemble(&felts[0], &felts[1])))
		assert.Equal(t, 0, s.Cmp(reassemble(&felts[2], &felts[3])))
		assert.True(t, felts[2].IsZero(), "s fits 128 bits so its high half is zero")
	})

	t.Run("legacy EIP-155 v carries the chain id", func(t *testing.T) {
		signer := types.NewEIP155Signer(big.NewInt(1))

		even := relay.SignatureFelts(withSignature(t, signer, legacyInner, r, s, 0))
		assert.Equal(t, uint64(37), even[4].Uint64())

		odd := relay.SignatureFelts(withSignature(t, signer, legacyInner, r, s, 1))
		assert.Equal(t, uint64(38), odd[4].Uint64())
	})

	t.Run("legacy pre EIP-155 v is 27 or 28", func(t *testing.T) {
		even := relay.SignatureFelts(withSignature(t, types.HomesteadSigner{}, legacyInner, r, s, 0))
		assert.Equal(t, uint64(27), even[4].Uint64())

		odd := relay.SignatureFelts(withSignature(t, types.HomesteadSigner{}, legacyInner, r, s, 1))
		assert.Equal(t, uint64(28), odd[4].Uint64())
	})

	t.Run("typed transaction v is the bare parity bit", func(t *testing.T) {
		signer := types.LatestSignerForChainID(big.NewInt(1))
		inner := dynamicFeeTx(1, 21_000, 10, 1)

		even := relay.SignatureFelts(withSignature(t, signer, inner, r, s, 0))
		assert.True(t, even[4].IsZero())

		odd := relay.SignatureFelts(withSignature(t, signer, inner, r, s, 1))
		assert.Equal(t, uint64(1), odd[4].Uint64())
	})

	t.Run("maximum 256-bit values split losslessly", func(t *testing.T) {
		max := new(big.Int).Lsh(big.NewInt(1), 256)
		max.Sub(max, big.NewInt(1))

		tx := withSignature(t, types.HomesteadSigner{}, legacyInner, max, max, 1)
		felts := relay.SignatureFelts(tx)

		assert.Equal(t, 0, max.Cmp(reassemble(&felts[0], &felts[1])))
		assert.Equal(t, 0, max.Cmp(reassemble(&felts[2], &felts[3])))
	})
}
