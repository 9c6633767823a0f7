package relay

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

// BlockContext is the slice of the previous block header the validator
// needs: the base fee (nil meaning zero) and the block gas limit.
type BlockContext struct {
	BaseFee  *big.Int
	GasLimit uint64
}

// Validator is the gate every inbound Ethereum transaction passes
// before being translated into execution-layer calldata. It holds no
// mutable state; the whitelist is read-only after construction, so a
// single Validator is safe for concurrent use.
type Validator struct {
	chainID              *big.Int
	tracingBlockGasLimit uint64
	whitelist            *Whitelist
}

func NewValidator(cfg *Config, whitelist *Whitelist) *Validator {
	return &Validator{
		chainID:              new(big.Int).SetUint64(cfg.ChainID),
		tracingBlockGasLimit: cfg.TracingBlockGasLimit,
		whitelist:            whitelist,
	}
}

// Validate checks the signed transaction against the consensus-adjacent
// rules of the relay. Checks run in a fixed order and the first failure
// is returned, so the caller always sees a deterministic diagnostic:
//
//  1. the gas limit is within the tracing block gas limit
//  2. the signature recovers to a signer
//  3. the chain id, if explicit, matches the expected one
//  4. a pre EIP-155 transaction hash is whitelisted
//  5. the block base fee is within the max fee per gas
//  6. the max priority fee is within the max fee per gas
//  7. the gas limit is within the block gas limit
func (v *Validator) Validate(tx *types.Transaction, header *BlockContext) error {
	// Anything above the tracing ceiling would revert on the execution
	// layer anyway, so reject it before doing any recovery work.
	if tx.Gas() > v.tracingBlockGasLimit {
		return ErrGasOverflow
	}

	if _, err := types.Sender(recoverySigner(tx), tx); err != nil {
		return ErrSignatureRecovery
	}

	if hasChainID(tx) {
		if tx.ChainId().Cmp(v.chainID) != 0 {
			return ErrInvalidChainID
		}
	} else if !v.whitelist.Contains(tx.Hash()) {
		return ErrInvalidTransactionType
	}

	baseFee := header.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}
	maxFeePerGas := tx.GasFeeCap()
	if baseFee.Cmp(maxFeePerGas) > 0 {
		return &FeeCapTooLowError{MaxFeePerGas: maxFeePerGas, BaseFee: baseFee}
	}

	// For legacy and access-list transactions geth reports the gas
	// price as the tip, which equals the fee cap, so this check can
	// only fire for dynamic fee transactions.
	if tip := tx.GasTipCap(); tip.Cmp(maxFeePerGas) > 0 {
		return &TipAboveFeeCapError{MaxFeePerGas: maxFeePerGas, Tip: tip}
	}

	if tx.Gas() > header.GasLimit {
		return &ExceedsBlockGasLimitError{TxGasLimit: tx.Gas(), BlockGasLimit: header.GasLimit}
	}

	return nil
}

// hasChainID reports whether the transaction carries an explicit chain
// id. Typed transactions always do; a legacy transaction does only when
// it is EIP-155 protected. Note tx.ChainId() returns zero for an
// unprotected legacy transaction, which must not be read as an explicit
// id of zero.
func hasChainID(tx *types.Transaction) bool {
	return tx.Type() != types.LegacyTxType || tx.Protected()
}

// recoverySigner picks the signer matching the transaction's own chain
// id and protection status. Recovery is therefore decoupled from the
// expected chain id: a transaction signed for another chain still
// recovers here and then fails the dedicated chain id check.
func recoverySigner(tx *types.Transaction) types.Signer {
	if !hasChainID(tx) {
		return types.HomesteadSigner{}
	}
	return types.LatestSignerForChainID(tx.ChainId())
}
