package relay

import (
	"errors"

	"github.com/NethermindEth/ethrelay/core/felt"
)

const (
	// DefaultTracingBlockGasLimit is the ceiling above which a
	// transaction can no longer be traced downstream.
	DefaultTracingBlockGasLimit uint64 = 1_500_000_000

	// DefaultMaxFelts bounds the size of a single invoke call's
	// calldata, matching the sequencer gateway's request limit.
	DefaultMaxFelts = 22_500

	// maxRetries is the largest retry counter a caller can supply; the
	// counter is a uint8 so the bound is structural.
	maxRetries = 255
)

// Config carries the relay constants owned by system configuration: the
// execution-layer contract the relayed transaction is sent to, the base
// entry point selector, and the ceilings applied during validation and
// encoding. Fields unmarshal from YAML/flags via mapstructure, with
// felts given as hex or decimal strings.
type Config struct {
	ChainID              uint64    `mapstructure:"chain-id"`
	TargetAddress        felt.Felt `mapstructure:"target-address"`
	BaseSelector         felt.Felt `mapstructure:"base-selector"`
	MaxFelts             int       `mapstructure:"max-felts"`
	EnforceFeltLimit     bool      `mapstructure:"enforce-felt-limit"`
	TracingBlockGasLimit uint64    `mapstructure:"tracing-gas-limit"`
}

func (c *Config) Validate() error {
	if c.ChainID == 0 {
		return errors.New("chain id must be set")
	}
	if c.TargetAddress.IsZero() {
		return errors.New("target address must be set")
	}
	if c.EnforceFeltLimit && c.MaxFelts <= 0 {
		return errors.New("max felts must be positive when the felt limit is enforced")
	}
	if c.TracingBlockGasLimit == 0 {
		return errors.New("tracing block gas limit must be set")
	}
	return nil
}
