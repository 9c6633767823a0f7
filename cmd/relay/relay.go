package main

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/NethermindEth/ethrelay/core/felt"
	"github.com/NethermindEth/ethrelay/relay"
	"github.com/NethermindEth/ethrelay/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	configF           = "config"
	verbosityF        = "verbosity"
	colourF           = "colour"
	chainIDF          = "chain-id"
	targetAddressF    = "target-address"
	baseSelectorF     = "base-selector"
	maxFeltsF         = "max-felts"
	enforceFeltLimitF = "enforce-felt-limit"
	tracingGasLimitF  = "tracing-gas-limit"
	whitelistF        = "whitelist"
	baseFeeF          = "base-fee"
	blockGasLimitF    = "block-gas-limit"
	retriesF          = "retries"

	defaultConfig           = ""
	defaultColour           = true
	defaultChainID          = uint64(1)
	defaultTargetAddress    = ""
	defaultBaseSelector     = ""
	defaultMaxFelts         = relay.DefaultMaxFelts
	defaultEnforceFeltLimit = true
	defaultWhitelist        = ""
	defaultBaseFee          = uint64(0)
	defaultBlockGasLimit    = uint64(30_000_000)
	defaultRetries          = uint8(0)

	configFlagUsage    = "The yaml configuration file."
	verbosityFlagUsage = "Verbosity of the logs. Options: debug, info, warn, error."
	colourUsage        = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
	chainIDUsage       = "The chain id transactions are expected to be signed for."
	targetAddressUsage = "Address of the execution-layer contract relayed transactions invoke."
	baseSelectorUsage  = "Entry point selector of the target contract before the retry perturbation."
	maxFeltsUsage      = "Upper bound on the number of field elements in the encoded calldata."
	enforceFeltUsage   = "Rejects transactions whose calldata exceeds max-felts. " +
		"Disable only for compatibility testing."
	tracingGasUsage = "Gas limit ceiling above which transactions cannot be traced downstream."
	whitelistUsage  = "JSON file with the pre EIP-155 transaction hashes exempt from the chain id requirement."
	baseFeeUsage    = "Base fee per gas of the previous block."
	blockGasUsage   = "Gas limit of the previous block."
	retriesUsage    = "Resubmission counter folded into the selector to vary the request fingerprint."
)

// Config is the CLI surface: the relay core configuration plus the
// per-invocation inputs an embedding process would receive from its
// chain-state provider.
type Config struct {
	relay.Config `mapstructure:",squash"`

	Verbosity     utils.LogLevel `mapstructure:"verbosity"`
	Colour        bool           `mapstructure:"colour"`
	Whitelist     string         `mapstructure:"whitelist"`
	BaseFee       uint64         `mapstructure:"base-fee"`
	BlockGasLimit uint64         `mapstructure:"block-gas-limit"`
	Retries       uint8          `mapstructure:"retries"`
}

// Result is what a successful run prints: the invoke calldata and the
// signature felts the submitter concatenates into an outbound request.
type Result struct {
	Hash      common.Hash `json:"transaction_hash"`
	Signature []felt.Felt `json:"signature"`
	Calldata  []felt.Felt `json:"calldata"`
}

func NewCmd() *cobra.Command {
	var cfgFile string

	relayCmd := &cobra.Command{
		Use:     "relay [flags] <raw-transaction>",
		Short:   "Validates a signed Ethereum transaction and encodes it as felt calldata.",
		Args:    cobra.ExactArgs(1),
		Version: Version,
	}

	defaultVerbosity := utils.INFO
	relayCmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	relayCmd.Flags().Var(&defaultVerbosity, verbosityF, verbosityFlagUsage)
	relayCmd.Flags().Bool(colourF, defaultColour, colourUsage)
	relayCmd.Flags().Uint64(chainIDF, defaultChainID, chainIDUsage)
	relayCmd.Flags().String(targetAddressF, defaultTargetAddress, targetAddressUsage)
	relayCmd.Flags().String(baseSelectorF, defaultBaseSelector, baseSelectorUsage)
	relayCmd.Flags().Int(maxFeltsF, defaultMaxFelts, maxFeltsUsage)
	relayCmd.Flags().Bool(enforceFeltLimitF, defaultEnforceFeltLimit, enforceFeltUsage)
	relayCmd.Flags().Uint64(tracingGasLimitF, relay.DefaultTracingBlockGasLimit, tracingGasUsage)
	relayCmd.Flags().String(whitelistF, defaultWhitelist, whitelistUsage)
	relayCmd.Flags().Uint64(baseFeeF, defaultBaseFee, baseFeeUsage)
	relayCmd.Flags().Uint64(blockGasLimitF, defaultBlockGasLimit, blockGasUsage)
	relayCmd.Flags().Uint8(retriesF, defaultRetries, retriesUsage)

	relayCmd.RunE = func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := new(Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		))); err != nil {
			return err
		}

		return run(cmd, cfg, args[0])
	}

	return relayCmd
}

func run(cmd *cobra.Command, cfg *Config, rawTx string) error {
	if err := cfg.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := utils.NewZapLogger(cfg.Verbosity, cfg.Colour)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	txBytes, err := hexutil.Decode(rawTx)
	if err != nil {
		return fmt.Errorf("decode raw transaction hex: %w", err)
	}
	tx := new(types.Transaction)
	if err = tx.UnmarshalBinary(txBytes); err != nil {
		return fmt.Errorf("decode raw transaction: %w", err)
	}
	log.Debugw("Decoded transaction", "hash", tx.Hash(), "type", tx.Type())

	var whitelist *relay.Whitelist
	if cfg.Whitelist != "" {
		if whitelist, err = relay.WhitelistFromFile(cfg.Whitelist); err != nil {
			return err
		}
		log.Debugw("Loaded pre EIP-155 whitelist", "hashes", whitelist.Len())
	}

	header := &relay.BlockContext{
		BaseFee:  new(big.Int).SetUint64(cfg.BaseFee),
		GasLimit: cfg.BlockGasLimit,
	}
	if err = relay.NewValidator(&cfg.Config, whitelist).Validate(tx, header); err != nil {
		return fmt.Errorf("validate transaction %s: %w", tx.Hash(), err)
	}

	encoder, err := relay.NewEncoder(&cfg.Config)
	if err != nil {
		return err
	}
	calldata, err := encoder.Encode(tx, cfg.Retries)
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.Hash(), err)
	}
	signature := relay.SignatureFelts(tx)
	log.Infow("Transaction relayable", "hash", tx.Hash(), "felts", len(calldata))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(Result{
		Hash:      tx.Hash(),
		Signature: signature[:],
		Calldata:  calldata,
	})
}
