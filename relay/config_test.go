package relay_test

import (
	"testing"

	"github.com/NethermindEth/ethrelay/core/felt"
	"github.com/NethermindEth/ethrelay/relay"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testConfig().Validate())
	})

	tests := map[string]func(*relay.Config){
		"missing chain id":       func(c *relay.Config) { c.ChainID = 0 },
		"missing target address": func(c *relay.Config) { c.TargetAddress = felt.Zero },
		"enforced zero felt limit": func(c *relay.Config) {
			c.EnforceFeltLimit = true
			c.MaxFelts = 0
		},
		"missing tracing gas limit": func(c *relay.Config) { c.TracingBlockGasLimit = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("unenforced felt limit may be zero", func(t *testing.T) {
		cfg := testConfig()
		cfg.EnforceFeltLimit = false
		cfg.MaxFelts = 0
		assert.NoError(t, cfg.Validate())
	})
}
