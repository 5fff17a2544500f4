package pipeline

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"tiquete/internal"
	"tiquete/internal/logger"
	"tiquete/internal/storage"
	"tiquete/internal/util"
)

type ProcessingService struct {
	store  storage.Store
	engine *Engine
	canon  *Canonicalizer
}

func NewProcessingService(store storage.Store, engine *Engine, canon *Canonicalizer) *ProcessingService {
	if engine == nil {
		engine = NewEngine(nil)
	}
	if canon == nil {
		canon = defaultCanonicalizer
	}
	return &ProcessingService{store: store, engine: engine, canon: canon}
}

type ProcessResult struct {
	ReceiptID int
	Vendor    internal.VendorType
	Products  []internal.Product
	Duplicate bool
}

// Process extracts one receipt, canonicalizes its names against those
// already stored and saves it. A receipt whose bytes were seen before is
// returned from storage untouched.
func (s *ProcessingService) Process(source string, kind internal.SourceKind, blob []byte, hint internal.VendorType) (ProcessResult, error) {
	start := time.Now()
	trace := traceID()
	hash := contentHash(blob)

	existing, err := s.store.ReceiptByHash(hash)
	switch {
	case err == nil:
		logger.Info("receipt already stored", "traceId", trace, "receiptId", existing.ID, "source", source)
		return ProcessResult{ReceiptID: existing.ID, Vendor: existing.Vendor, Products: rowsToProducts(existing.Products), Duplicate: true}, nil
	case !errors.Is(err, storage.ErrNotFound):
		return ProcessResult{}, fmt.Errorf("looking up receipt: %w", err)
	}

	text, err := ReadSource(kind, blob)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("reading %s: %w", source, err)
	}
	vendor, products := s.engine.Run(text, hint)

	names, err := s.store.ListCanonicalNames()
	if err != nil {
		return ProcessResult{}, fmt.Errorf("listing canonical names: %w", err)
	}
	products = s.canon.CanonicalizeAll(products, names)

	id, err := s.store.SaveReceipt(internal.ReceiptRecord{
		Source:   source,
		Vendor:   vendor,
		Hash:     hash,
		Products: ProductRows(products),
	})
	if err != nil {
		return ProcessResult{}, fmt.Errorf("saving receipt: %w", err)
	}

	if len(products) == 0 {
		logger.Warn("no items extracted", "traceId", trace, "receiptId", id, "vendor", vendor, "source", source)
	}
	logger.Info("receipt processed",
		"traceId", trace,
		"receiptId", id,
		"vendor", vendor,
		"items", len(products),
		"totalMs", time.Since(start).Milliseconds(),
	)

	return ProcessResult{ReceiptID: id, Vendor: vendor, Products: products}, nil
}

// CanonicalizeAll canonicalizes products in order. Each result joins a
// local copy of existing so later items can match earlier ones.
func (c *Canonicalizer) CanonicalizeAll(products []internal.Product, existing []string) []internal.Product {
	names := make([]string, len(existing), len(existing)+len(products))
	copy(names, existing)

	out := make([]internal.Product, 0, len(products))
	for _, p := range products {
		desc := c.Canonicalize(p.Description, names)
		names = append(names, productName(desc))
		out = append(out, internal.Product{Description: desc, Price: p.Price})
	}
	return out
}

func productName(desc string) string {
	name, _ := util.SplitDescription(desc)
	return strings.TrimSpace(name)
}

func rowsToProducts(rows []internal.ProductRow) []internal.Product {
	out := make([]internal.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, internal.Product{Description: r.Description, Price: r.Price})
	}
	return out
}

func contentHash(blob []byte) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
