package relay_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NethermindEth/ethrelay/relay"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitelist(t *testing.T) {
	known := common.HexToHash("0x8a1b9b2c3d4e5f60718293a4b5c6d7e8f9aabbccddeeff00112233445566778899")
	other := common.HexToHash("0x01")

	t.Run("contains", func(t *testing.T) {
		w := relay.NewWhitelist(known)
		assert.True(t, w.Contains(known))
		assert.False(t, w.Contains(other))
		assert.Equal(t, 1, w.Len())
	})

	t.Run("nil whitelist contains nothing", func(t *testing.T) {
		var w *relay.Whitelist
		assert.False(t, w.Contains(known))
		assert.Equal(t, 0, w.Len())
	})
}

func TestWhitelistFromFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		hashes := []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02")}
		path := filepath.Join(t.TempDir(), "whitelist.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`["`+hashes[0].Hex()+`","`+hashes[1].Hex()+`"]`), 0o600))

		w, err := relay.WhitelistFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, w.Len())
		assert.True(t, w.Contains(hashes[0]))
		assert.True(t, w.Contains(hashes[1]))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := relay.WhitelistFromFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "whitelist.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o600))

		_, err := relay.WhitelistFromFile(path)
		assert.Error(t, err)
	})
}
