package relay

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrGasOverflow is returned for transactions whose gas limit exceeds
	// the tracing block gas limit. Such transactions would revert on the
	// execution layer, so they are rejected before any encoding work.
	ErrGasOverflow = errors.New("transaction gas limit exceeds the tracing block gas limit")

	// ErrSignatureRecovery is returned when the transaction signature
	// does not recover to a signer.
	ErrSignatureRecovery = errors.New("failed to recover the transaction signer")

	// ErrInvalidChainID is returned when the transaction carries an
	// explicit chain id different from the expected one.
	ErrInvalidChainID = errors.New("transaction chain id does not match the expected chain id")

	// ErrInvalidTransactionType is returned for pre EIP-155 transactions
	// whose hash is not whitelisted.
	ErrInvalidTransactionType = errors.New("pre EIP-155 transaction hash is not whitelisted")

	// ErrUnsupportedTxType is returned by the encoder for transaction
	// kinds the execution layer cannot relay (blob, set-code).
	ErrUnsupportedTxType = errors.New("unsupported transaction type")

	// ErrSelectorOverflow reports a misconfigured base selector: adding
	// the maximum retry counter to it would wrap around the field
	// modulus. This is a configuration defect, never a property of a
	// submitted transaction, which is why it is surfaced at encoder
	// construction rather than per call.
	ErrSelectorOverflow = errors.New("base selector plus maximum retries exceeds the field modulus")
)

// FeeCapTooLowError is returned when the block base fee exceeds the
// transaction's max fee per gas.
type FeeCapTooLowError struct {
	MaxFeePerGas *big.Int
	BaseFee      *big.Int
}

func (e *FeeCapTooLowError) Error() string {
	return fmt.Sprintf("max fee per gas less than block base fee: maxFeePerGas %v, baseFee %v", e.MaxFeePerGas, e.BaseFee)
}

// TipAboveFeeCapError is returned when the max priority fee exceeds the
// transaction's max fee per gas.
type TipAboveFeeCapError struct {
	MaxFeePerGas *big.Int
	Tip          *big.Int
}

func (e *TipAboveFeeCapError) Error() string {
	return fmt.Sprintf("max priority fee per gas higher than max fee per gas: maxFeePerGas %v, maxPriorityFeePerGas %v", e.MaxFeePerGas, e.Tip)
}

// ExceedsBlockGasLimitError is returned when the transaction gas limit
// exceeds the gas limit of the block it would be included after.
type ExceedsBlockGasLimitError struct {
	TxGasLimit    uint64
	BlockGasLimit uint64
}

func (e *ExceedsBlockGasLimitError) Error() string {
	return fmt.Sprintf("transaction gas limit %d exceeds block gas limit %d", e.TxGasLimit, e.BlockGasLimit)
}

// CalldataExceededLimitError is returned when the encoded calldata
// needs more field elements than the configured ceiling.
type CalldataExceededLimitError struct {
	Limit    int
	Capacity int
}

func (e *CalldataExceededLimitError) Error() string {
	return fmt.Sprintf("calldata exceeded limit of %d felts: %d", e.Limit, e.Capacity)
}
