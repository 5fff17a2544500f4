package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tiquete/internal"
)

type DB struct {
	conn *sql.DB
}

func OpenSQLite(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS receipts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  vendor TEXT NOT NULL,
  hash TEXT NOT NULL UNIQUE,
  createdAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  receiptId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price INTEGER NOT NULL,
  UNIQUE(receiptId, lineNo),
  FOREIGN KEY(receiptId) REFERENCES receipts(id)
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) SaveReceipt(rec internal.ReceiptRecord) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	res, err := tx.Exec(`INSERT INTO receipts(source, vendor, hash, createdAt) VALUES(?, ?, ?, ?)`,
		rec.Source, string(rec.Vendor), rec.Hash, createdAt)
	if err != nil {
		return 0, fmt.Errorf("inserting receipt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`INSERT INTO products(receiptId, lineNo, name, description, price) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, p := range rec.Products {
		if _, err := stmt.Exec(id, p.LineNo, p.Name, p.Description, p.Price); err != nil {
			return 0, fmt.Errorf("inserting product line %d: %w", p.LineNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(id), nil
}

func (d *DB) GetReceipt(id int) (*internal.ReceiptRecord, error) {
	return d.receiptWhere(`id = ?`, id)
}

func (d *DB) ReceiptByHash(hash string) (*internal.ReceiptRecord, error) {
	return d.receiptWhere(`hash = ?`, hash)
}

func (d *DB) receiptWhere(cond string, arg any) (*internal.ReceiptRecord, error) {
	var rec internal.ReceiptRecord
	var vendor string
	err := d.conn.QueryRow(`SELECT id, source, vendor, hash, createdAt FROM receipts WHERE `+cond, arg).
		Scan(&rec.ID, &rec.Source, &vendor, &rec.Hash, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.Vendor = internal.VendorType(vendor)

	rows, err := d.conn.Query(`SELECT lineNo, name, description, price FROM products WHERE receiptId = ? ORDER BY lineNo`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec.Products = []internal.ProductRow{}
	for rows.Next() {
		var p internal.ProductRow
		if err := rows.Scan(&p.LineNo, &p.Name, &p.Description, &p.Price); err != nil {
			return nil, err
		}
		rec.Products = append(rec.Products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListCanonicalNames returns each stored product name once, oldest first.
func (d *DB) ListCanonicalNames() ([]string, error) {
	rows, err := d.conn.Query(`SELECT name FROM products GROUP BY name ORDER BY MIN(id)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	seen := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = appendUnique(names, seen, name)
	}
	return names, rows.Err()
}
