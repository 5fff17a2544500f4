package storage

import (
	"errors"
	"fmt"

	"tiquete/internal"
	"tiquete/internal/config"
)

var ErrNotFound = errors.New("not found")

// Store persists processed receipts and supplies the canonical names
// already in use.
type Store interface {
	SaveReceipt(rec internal.ReceiptRecord) (int, error)
	GetReceipt(id int) (*internal.ReceiptRecord, error)
	ReceiptByHash(hash string) (*internal.ReceiptRecord, error)
	ListCanonicalNames() ([]string, error)
	Close() error
}

// Open picks the backend named by cfg.StoreDriver.
func Open(cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite, "":
		return OpenSQLite(cfg.DBPath)
	case config.DriverBolt:
		return OpenBolt(cfg.BoltPath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func appendUnique(names []string, seen map[string]struct{}, name string) []string {
	if name == "" {
		return names
	}
	if _, ok := seen[name]; ok {
		return names
	}
	seen[name] = struct{}{}
	return append(names, name)
}
