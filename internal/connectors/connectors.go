package connectors

import "tiquete/internal"

// ReceiptConnector hands out raw receipts waiting in some inbox. Ack is
// called once a receipt is archived so it is not fetched again.
type ReceiptConnector interface {
	FetchInbox(max int) ([]internal.FetchedReceipt, error)
	Ack(msg internal.FetchedReceipt) error
}
