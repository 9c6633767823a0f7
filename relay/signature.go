package relay

import (
	"math/big"

	"github.com/NethermindEth/ethrelay/core/felt"
	"github.com/ethereum/go-ethereum/core/types"
)

// SignatureFelts converts the transaction's ECDSA signature into the
// five field elements expected by the execution layer:
// [r_high, r_low, s_high, s_low, v]. r and s are split into big-endian
// 128-bit halves, each of which fits a felt without reduction.
//
// The last element follows the wire format of the transaction kind: for
// a legacy transaction it is the full recovery value
// ({0,1} + 2*chain_id + 35, or {0,1} + 27 pre EIP-155), for typed
// transactions it is the bare y-parity bit. geth stores the raw v in
// exactly these two forms, so no recomputation is needed.
func SignatureFelts(tx *types.Transaction) [5]felt.Felt {
	v, r, s := tx.RawSignatureValues()

	rHigh, rLow := splitU256(r)
	sHigh, sLow := splitU256(s)

	return [5]felt.Felt{
		rHigh,
		rLow,
		sHigh,
		sLow,
		felt.FromBytesBE(v.Bytes()),
	}
}

// splitU256 splits a 256-bit unsigned integer into its big-endian
// 128-bit halves, each returned as a felt. Lossless because the field
// modulus exceeds 2^128.
func splitU256(x *big.Int) (high, low felt.Felt) {
	var buf [32]byte
	x.FillBytes(buf[:])
	return felt.FromBytesBE(buf[:16]), felt.FromBytesBE(buf[16:])
}
