package storage

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tiquete/internal"
	"tiquete/internal/config"
)

func sampleReceipt(hash string, names ...string) internal.ReceiptRecord {
	rec := internal.ReceiptRecord{Source: hash + ".txt", Vendor: internal.VendorExito, Hash: hash}
	for i, n := range names {
		rec.Products = append(rec.Products, internal.ProductRow{
			LineNo:      i + 1,
			Name:        n,
			Description: n + " [Éxito]",
			Price:       1000 * (i + 1),
		})
	}
	return rec
}

var _ = Describe("Store", func() {
	backends := []struct {
		name string
		open func(dir string) (Store, error)
	}{
		{"sqlite", func(dir string) (Store, error) {
			return Open(config.Config{StoreDriver: config.DriverSQLite, DBPath: filepath.Join(dir, "test.db")})
		}},
		{"bolt", func(dir string) (Store, error) {
			return Open(config.Config{StoreDriver: config.DriverBolt, BoltPath: filepath.Join(dir, "test.bolt")})
		}},
	}

	for _, backend := range backends {
		open := backend.open
		Describe(backend.name, func() {
			var store Store

			BeforeEach(func() {
				var err error
				store, err = open(GinkgoT().TempDir())
				Expect(err).NotTo(HaveOccurred())
			})

			AfterEach(func() {
				if store != nil {
					store.Close()
				}
			})

			Describe("SaveReceipt", func() {
				var (
					id  int
					err error
				)

				JustBeforeEach(func() {
					id, err = store.SaveReceipt(sampleReceipt("h1", "Habichuela A Granel", "Leche Entera"))
				})

				It("should assign an id", func() {
					Expect(err).NotTo(HaveOccurred())
					Expect(id).To(BeNumerically(">", 0))
				})

				It("should return the products in line order", func() {
					rec, getErr := store.GetReceipt(id)
					Expect(getErr).NotTo(HaveOccurred())
					Expect(rec.Vendor).To(Equal(internal.VendorExito))
					Expect(rec.CreatedAt).NotTo(BeEmpty())
					Expect(rec.Products).To(HaveLen(2))
					Expect(rec.Products[0].Name).To(Equal("Habichuela A Granel"))
					Expect(rec.Products[1].Price).To(Equal(2000))
					Expect(rec.Total()).To(Equal(3000))
				})

				It("should find the receipt by hash", func() {
					rec, getErr := store.ReceiptByHash("h1")
					Expect(getErr).NotTo(HaveOccurred())
					Expect(rec.ID).To(Equal(id))
				})

				When("the hash is already stored", func() {
					It("should reject the second receipt", func() {
						Expect(err).NotTo(HaveOccurred())
						_, dupErr := store.SaveReceipt(sampleReceipt("h1", "Otro"))
						Expect(dupErr).To(HaveOccurred())
					})
				})
			})

			Describe("lookups that miss", func() {
				It("should return ErrNotFound", func() {
					_, err := store.GetReceipt(42)
					Expect(errors.Is(err, ErrNotFound)).To(BeTrue())

					_, err = store.ReceiptByHash("missing")
					Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
				})
			})

			Describe("ListCanonicalNames", func() {
				It("should be empty for a new store", func() {
					names, err := store.ListCanonicalNames()
					Expect(err).NotTo(HaveOccurred())
					Expect(names).To(BeEmpty())
				})

				It("should list each name once, oldest first", func() {
					_, err := store.SaveReceipt(sampleReceipt("h1", "Tomate Chonto", "Banano"))
					Expect(err).NotTo(HaveOccurred())
					_, err = store.SaveReceipt(sampleReceipt("h2", "Banano", "Papa Pastusa", "Tomate Chonto"))
					Expect(err).NotTo(HaveOccurred())

					names, err := store.ListCanonicalNames()
					Expect(err).NotTo(HaveOccurred())
					Expect(names).To(Equal([]string{"Tomate Chonto", "Banano", "Papa Pastusa"}))
				})
			})
		})
	}

	It("should reject an unknown driver", func() {
		_, err := Open(config.Config{StoreDriver: "postgres"})
		Expect(err).To(HaveOccurred())
	})
})
