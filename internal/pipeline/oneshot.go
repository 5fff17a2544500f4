package pipeline

import (
	"fmt"
	"os"

	"tiquete/internal"
)

type OneShotResult struct {
	Vendor   internal.VendorType
	Products []internal.Product
}

// ExtractFromFile reads one receipt file and extracts it without touching
// storage. An empty kind is guessed from the extension.
func (e *Engine) ExtractFromFile(kind internal.SourceKind, path string, hint internal.VendorType) (OneShotResult, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return OneShotResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if kind == "" {
		kind = SourceKindFromPath(path)
	}
	text, err := ReadSource(kind, blob)
	if err != nil {
		return OneShotResult{}, err
	}
	vendor, products := e.Run(text, hint)
	return OneShotResult{Vendor: vendor, Products: products}, nil
}
