package markov

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidChain is returned when an imported chain lacks a well-formed start entry.
var ErrInvalidChain = errors.New("invalid chain")

// ExportedChain is the serializable representation of a named chain,
// used for JSON-based import and export.
type ExportedChain struct {
	Name  string              `json:"name"`
	Chain map[string][]string `json:"chain"` // token -> ordered successors
}

// ExportChain serializes chain under name into indented JSON and writes it to w.
func ExportChain(w io.Writer, name string, chain Chain) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportedChain{Name: name, Chain: chain})
}

// ImportChain reads a chain previously written by ExportChain. The start entry
// must hold exactly one token.
func ImportChain(r io.Reader) (string, Chain, error) {
	var imported ExportedChain
	if err := json.NewDecoder(r).Decode(&imported); err != nil {
		return "", nil, fmt.Errorf("failed to decode json chain: %w", err)
	}
	if start := imported.Chain[StartKey]; len(start) != 1 {
		return "", nil, fmt.Errorf("%w: start entry has %d tokens", ErrInvalidChain, len(start))
	}
	return imported.Name, Chain(imported.Chain), nil
}
