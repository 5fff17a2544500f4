package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"tiquete/internal"
)

const (
	receiptsBucket = "receipts"
	hashesBucket   = "receipt_hashes"
)

// BoltDB implements Store on a single bbolt file. Receipts are JSON values
// keyed by a big-endian sequence number, so iteration is insertion order.
type BoltDB struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(receiptsBucket)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(hashesBucket)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

func (b *BoltDB) SaveReceipt(rec internal.ReceiptRecord) (int, error) {
	var id int
	err := b.db.Update(func(tx *bbolt.Tx) error {
		hashes := tx.Bucket([]byte(hashesBucket))
		if hashes.Get([]byte(rec.Hash)) != nil {
			return fmt.Errorf("receipt hash %s already stored", rec.Hash)
		}

		receipts := tx.Bucket([]byte(receiptsBucket))
		seq, err := receipts.NextSequence()
		if err != nil {
			return err
		}
		id = int(seq)
		rec.ID = id
		if rec.CreatedAt == "" {
			rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling receipt: %w", err)
		}
		if err := receipts.Put(itob(id), data); err != nil {
			return err
		}
		return hashes.Put([]byte(rec.Hash), itob(id))
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (b *BoltDB) GetReceipt(id int) (*internal.ReceiptRecord, error) {
	var rec *internal.ReceiptRecord
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(receiptsBucket)).Get(itob(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *BoltDB) ReceiptByHash(hash string) (*internal.ReceiptRecord, error) {
	var id int
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(hashesBucket)).Get([]byte(hash))
		if v == nil {
			return ErrNotFound
		}
		id = int(binary.BigEndian.Uint64(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.GetReceipt(id)
}

func (b *BoltDB) ListCanonicalNames() ([]string, error) {
	names := []string{}
	seen := map[string]struct{}{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(receiptsBucket)).ForEach(func(_, v []byte) error {
			var rec internal.ReceiptRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling receipt: %w", err)
			}
			for _, p := range rec.Products {
				names = appendUnique(names, seen, p.Name)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
