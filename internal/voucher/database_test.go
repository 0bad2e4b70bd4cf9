package voucher

import (
	"errors"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bizbook-labs/ledgerscan/internal/invoice"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveDraft", func() {
		var (
			record *DraftRecord
			err    error
		)

		BeforeEach(func() {
			record = &DraftRecord{
				ID: "test-id",
				Draft: invoice.Draft{
					InvoiceNumber: "SELL-1234",
					InvoiceDate:   "2025-07-15",
					Total:         105.00,
				},
				SourceText:  "Invoice Number: INV-1234",
				Filename:    "test.jpg",
				ContentType: "image/jpeg",
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveDraft(record)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the draft to the database", func() {
				saved, getErr := db.GetDraft("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})
		})
	})

	Describe("GetDraft", func() {
		var (
			draftID string
			record  *DraftRecord
			err     error
		)

		JustBeforeEach(func() {
			record, err = db.GetDraft(draftID)
		})

		When("draft exists", func() {
			BeforeEach(func() {
				draftID = "test-id"
				testRecord := &DraftRecord{
					ID: "test-id",
					Draft: invoice.Draft{
						InvoiceNumber: "SELL-1234",
						CustomerName:  "John Smith",
						Total:         105.00,
					},
					Filename:    "test.jpg",
					ContentType: "image/jpeg",
					CreatedAt:   time.Now(),
					UpdatedAt:   time.Now(),
				}
				Expect(db.SaveDraft(testRecord)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the correct draft ID", func() {
				Expect(record.ID).To(Equal("test-id"))
			})

			It("should round-trip the extracted fields", func() {
				Expect(record.Draft.InvoiceNumber).To(Equal("SELL-1234"))
				Expect(record.Draft.CustomerName).To(Equal("John Smith"))
				Expect(record.Draft.Total).To(Equal(105.00))
			})
		})

		When("draft does not exist", func() {
			var expectedErr error

			BeforeEach(func() {
				draftID = "nonexistent"
				expectedErr = errors.New("draft not found: nonexistent")
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(expectedErr))
			})
		})
	})

	Describe("ListDrafts", func() {
		var (
			records []*DraftRecord
			err     error
		)

		JustBeforeEach(func() {
			records, err = db.ListDrafts()
		})

		When("drafts exist", func() {
			BeforeEach(func() {
				record1 := &DraftRecord{
					ID:        "id1",
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				record2 := &DraftRecord{
					ID:        "id2",
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				Expect(db.SaveDraft(record1)).NotTo(HaveOccurred())
				Expect(db.SaveDraft(record2)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return all drafts", func() {
				Expect(records).To(HaveLen(2))
			})
		})

		When("no drafts exist", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return an empty list", func() {
				Expect(records).To(BeEmpty())
			})
		})
	})

	Describe("DeleteDraft", func() {
		var (
			draftID string
			err     error
		)

		JustBeforeEach(func() {
			err = db.DeleteDraft(draftID)
		})

		When("draft exists", func() {
			BeforeEach(func() {
				draftID = "test-id"
				record := &DraftRecord{
					ID:        "test-id",
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				Expect(db.SaveDraft(record)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the draft from the database", func() {
				_, getErr := db.GetDraft("test-id")
				Expect(getErr).To(HaveOccurred())
			})
		})

		When("draft does not exist", func() {
			BeforeEach(func() {
				draftID = "nonexistent"
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("settings", func() {
		Describe("GetSetting", func() {
			When("the key exists", func() {
				BeforeEach(func() {
					Expect(db.PutSetting("accessToken", "tok-123")).NotTo(HaveOccurred())
				})

				It("returns the stored value", func() {
					value, err := db.GetSetting("accessToken")
					Expect(err).NotTo(HaveOccurred())
					Expect(value).To(Equal("tok-123"))
				})
			})

			When("the key is missing", func() {
				It("returns an empty string without an error", func() {
					value, err := db.GetSetting("nonexistent")
					Expect(err).NotTo(HaveOccurred())
					Expect(value).To(Equal(""))
				})
			})
		})

		Describe("PutSetting", func() {
			It("overwrites an existing value", func() {
				Expect(db.PutSetting("key", "one")).NotTo(HaveOccurred())
				Expect(db.PutSetting("key", "two")).NotTo(HaveOccurred())

				value, err := db.GetSetting("key")
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal("two"))
			})
		})

		Describe("DeleteSetting", func() {
			It("removes the key", func() {
				Expect(db.PutSetting("key", "value")).NotTo(HaveOccurred())
				Expect(db.DeleteSetting("key")).NotTo(HaveOccurred())

				value, err := db.GetSetting("key")
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal(""))
			})

			It("is a no-op for a missing key", func() {
				Expect(db.DeleteSetting("nonexistent")).NotTo(HaveOccurred())
			})
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			err := db.Close()
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
