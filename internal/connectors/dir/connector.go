package dir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tiquete/internal"
)

var receiptExts = map[string]struct{}{
	".txt": {}, ".pdf": {}, ".eml": {}, ".html": {}, ".htm": {},
}

// Connector reads receipts dropped into a local directory, oldest first.
type Connector struct {
	dir string
}

func NewConnector(dir string) (*Connector, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("inbox directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Connector{dir: dir}, nil
}

type inboxFile struct {
	name    string
	modTime time.Time
}

func (c *Connector) FetchInbox(max int) ([]internal.FetchedReceipt, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	files := []inboxFile{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, ok := receiptExts[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, inboxFile{name: e.Name(), modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.Before(files[j].modTime)
	})
	if max > 0 && len(files) > max {
		files = files[:max]
	}

	out := make([]internal.FetchedReceipt, 0, len(files))
	for _, f := range files {
		path := filepath.Join(c.dir, f.name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out = append(out, internal.FetchedReceipt{
			Name:       f.name,
			Path:       path,
			Raw:        raw,
			ReceivedAt: f.modTime.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// Ack removes the receipt from the inbox.
func (c *Connector) Ack(msg internal.FetchedReceipt) error {
	if err := os.Remove(filepath.Join(c.dir, msg.Name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
