package relay

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/ethrelay/core/felt"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// feltChunkSize is the number of payload bytes packed per felt. 31
// bytes keeps every chunk strictly below the field modulus, so packing
// never needs a reduction check.
const feltChunkSize = 31

// invokeHeaderLen is the number of fixed slots preceding the packed
// payload in the invoke call array: call array length, contract
// address, selector, data offset, data length, calldata length.
const invokeHeaderLen = 6

// Encoder translates a signed Ethereum transaction into the calldata of
// a single execution-layer contract invocation.
type Encoder struct {
	targetAddress felt.Felt
	baseSelector  felt.Felt
	maxFelts      int
	enforceLimit  bool
}

// NewEncoder builds an Encoder from the relay configuration. It fails
// with ErrSelectorOverflow if the base selector is within 255 of the
// field modulus: the selector is perturbed by the retry counter at
// encoding time and must never wrap. Checking here keeps a
// configuration defect out of the per-transaction error surface.
func NewEncoder(cfg *Config) (*Encoder, error) {
	selector := cfg.BaseSelector.BigInt(new(big.Int))
	if selector.Add(selector, big.NewInt(maxRetries)).Cmp(felt.Modulus()) >= 0 {
		return nil, ErrSelectorOverflow
	}

	return &Encoder{
		targetAddress: cfg.TargetAddress,
		baseSelector:  cfg.BaseSelector,
		maxFelts:      cfg.MaxFelts,
		enforceLimit:  cfg.EnforceFeltLimit,
	}, nil
}

// Encode re-encodes the transaction body without its signature, packs
// it into 31-byte felt chunks and assembles the invoke call array:
//
//	[1, target, base_selector + retries, 0, len(packed), len(packed)] ++ packed
//
// where packed is [len(payload)] followed by the payload chunks.
//
// Retries perturb the selector so a resubmitted transaction produces a
// different request fingerprint and is not rejected downstream as a
// duplicate; the receiving contract ignores the selector during
// execution, so the perturbation is inert.
func (e *Encoder) Encode(tx *types.Transaction, retries uint8) ([]felt.Felt, error) {
	payload, err := encodeWithoutSignature(tx)
	if err != nil {
		return nil, err
	}

	packed := make([]felt.Felt, 0, 1+(len(payload)+feltChunkSize-1)/feltChunkSize)
	packed = append(packed, felt.FromUint64(uint64(len(payload))))
	for i := 0; i < len(payload); i += feltChunkSize {
		packed = append(packed, felt.FromBytesBE(payload[i:min(i+feltChunkSize, len(payload))]))
	}

	capacity := invokeHeaderLen + len(packed)
	if e.enforceLimit && capacity > e.maxFelts {
		return nil, &CalldataExceededLimitError{Limit: e.maxFelts, Capacity: capacity}
	}

	// Cannot wrap: NewEncoder rejects selectors within maxRetries of
	// the modulus.
	retriesFelt := felt.FromUint64(uint64(retries))
	var selector felt.Felt
	selector.Add(&e.baseSelector, &retriesFelt)

	packedLen := felt.FromUint64(uint64(len(packed)))
	calldata := make([]felt.Felt, 0, capacity)
	calldata = append(calldata,
		felt.One,        // call array length
		e.targetAddress, // contract address
		selector,        // selector + retries
		felt.Zero,       // data offset
		packedLen,       // data length
		packedLen,       // calldata length
	)
	return append(calldata, packed...), nil
}

// encodeWithoutSignature serializes the transaction body with the
// signature fields excluded, using the deterministic encoding of the
// transaction's kind: the EIP-155 (or pre EIP-155) legacy list, or the
// type byte followed by the EIP-2930/EIP-1559 list. A nil destination
// (contract creation) encodes as the empty string.
func encodeWithoutSignature(tx *types.Transaction) ([]byte, error) {
	var to interface{} = []byte{}
	if addr := tx.To(); addr != nil {
		to = *addr
	}

	switch tx.Type() {
	case types.LegacyTxType:
		fields := []interface{}{tx.Nonce(), tx.GasPrice(), tx.Gas(), to, tx.Value(), tx.Data()}
		if tx.Protected() {
			fields = append(fields, tx.ChainId(), uint(0), uint(0))
		}
		return rlp.EncodeToBytes(fields)
	case types.AccessListTxType:
		return encodeTyped(tx.Type(), []interface{}{
			tx.ChainId(), tx.Nonce(), tx.GasPrice(), tx.Gas(), to, tx.Value(), tx.Data(), tx.AccessList(),
		})
	case types.DynamicFeeTxType:
		return encodeTyped(tx.Type(), []interface{}{
			tx.ChainId(), tx.Nonce(), tx.GasTipCap(), tx.GasFeeCap(), tx.Gas(), to, tx.Value(), tx.Data(), tx.AccessList(),
		})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTxType, tx.Type())
	}
}

func encodeTyped(txType uint8, fields []interface{}) ([]byte, error) {
	body, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, err
	}
	return append([]byte{txType}, body...), nil
}
