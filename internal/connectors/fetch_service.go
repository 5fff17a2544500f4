package connectors

import (
	"fmt"

	"tiquete/internal"
)

type FetchService struct {
	connector ReceiptConnector
	archive   *ArchiveService
}

type FetchResult struct {
	Fetched  int
	Archived int
}

func NewFetchService(archiveDir string, connector ReceiptConnector) *FetchService {
	return &FetchService{
		connector: connector,
		archive:   NewArchiveService(archiveDir),
	}
}

// FetchAndStore archives up to max receipts and acknowledges them. The
// returned receipts point at their archived copy.
func (s *FetchService) FetchAndStore(max int) ([]internal.FetchedReceipt, FetchResult, error) {
	messages, err := s.connector.FetchInbox(max)
	if err != nil {
		return nil, FetchResult{}, fmt.Errorf("fetching inbox: %w", err)
	}

	stored := make([]internal.FetchedReceipt, 0, len(messages))
	for _, msg := range messages {
		archived, err := s.archive.Store(msg)
		if err != nil {
			return stored, FetchResult{Fetched: len(messages), Archived: len(stored)}, err
		}
		if err := s.connector.Ack(msg); err != nil {
			return stored, FetchResult{Fetched: len(messages), Archived: len(stored)}, fmt.Errorf("acknowledging %s: %w", msg.Name, err)
		}
		stored = append(stored, archived)
	}

	return stored, FetchResult{Fetched: len(messages), Archived: len(stored)}, nil
}
