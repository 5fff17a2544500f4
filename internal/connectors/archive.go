package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tiquete/internal"
)

// ArchiveService keeps one copy of every raw receipt, named by content hash.
type ArchiveService struct {
	dir string
}

func NewArchiveService(dir string) *ArchiveService {
	return &ArchiveService{dir: dir}
}

func (s *ArchiveService) Store(msg internal.FetchedReceipt) (internal.FetchedReceipt, error) {
	hashBytes := sha256.Sum256(msg.Raw)
	hash := hex.EncodeToString(hashBytes[:])

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return internal.FetchedReceipt{}, err
	}

	rawPath := filepath.Join(s.dir, hash+strings.ToLower(filepath.Ext(msg.Name)))
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, msg.Raw, 0o644); err != nil {
			return internal.FetchedReceipt{}, fmt.Errorf("archiving %s: %w", msg.Name, err)
		}
	}

	msg.Hash = hash
	msg.Path = rawPath
	return msg, nil
}
