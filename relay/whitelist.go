package relay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
)

// Whitelist is the set of pre EIP-155 transaction hashes exempted from
// the chain id requirement. It is populated once at startup and never
// mutated afterwards, so concurrent lookups need no locking.
type Whitelist struct {
	hashes map[common.Hash]struct{}
}

func NewWhitelist(hashes ...common.Hash) *Whitelist {
	set := make(map[common.Hash]struct{}, len(hashes))
	for _, h := range hashes {
		set[h] = struct{}{}
	}
	return &Whitelist{hashes: set}
}

// WhitelistFromFile loads a whitelist from a JSON array of 0x-prefixed
// transaction hashes.
func WhitelistFromFile(path string) (*Whitelist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whitelist file: %w", err)
	}

	var hashes []common.Hash
	if err := json.Unmarshal(data, &hashes); err != nil {
		return nil, fmt.Errorf("parse whitelist file %q: %w", path, err)
	}
	return NewWhitelist(hashes...), nil
}

// Contains reports whether h is whitelisted. A nil whitelist contains
// nothing.
func (w *Whitelist) Contains(h common.Hash) bool {
	if w == nil {
		return false
	}
	_, ok := w.hashes[h]
	return ok
}

func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.hashes)
}
