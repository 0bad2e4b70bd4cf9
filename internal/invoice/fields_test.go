package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("extractInvoiceNumber", func() {
	It("rewrites an INV shorthand to the SELL series", func() {
		Expect(extractInvoiceNumber("some text INV-1234 more text")).To(Equal("SELL-1234"))
	})

	It("accepts the shorthand without a separator", func() {
		Expect(extractInvoiceNumber("INV4321 due today")).To(Equal("SELL-4321"))
	})

	It("prefers the shorthand over a labeled number", func() {
		Expect(extractInvoiceNumber("Bill Number: XJ-900 ref INV-1234")).To(Equal("SELL-1234"))
	})

	It("reads a labeled invoice number", func() {
		Expect(extractInvoiceNumber("Invoice Number: A-4417B Date")).To(Equal("A-4417B"))
	})

	It("reads a labeled bill number", func() {
		Expect(extractInvoiceNumber("Bill Number: 77-041")).To(Equal("77-041"))
	})

	It("reads a receipt number", func() {
		Expect(extractInvoiceNumber("Receipt 8842-A Total: 10")).To(Equal("8842-A"))
	})

	When("only unlabeled tokens remain", func() {
		It("picks the highest-scoring alphanumeric token", func() {
			// "98XB-4412" mixes letters and digits, has a separator and a
			// good length; plain words score far lower.
			Expect(extractInvoiceNumber("Payment reference 98XB-4412 overdue")).To(Equal("98XB-4412"))
		})

		It("skips dates, phone numbers, years and keywords", func() {
			Expect(extractInvoiceNumber("2024 12-31-2024 9876543210")).To(Equal(""))
		})

		It("breaks ties by original order", func() {
			Expect(extractInvoiceNumber("alpha bravo")).To(Equal("alpha"))
		})
	})

	It("returns empty for empty text", func() {
		Expect(extractInvoiceNumber("")).To(Equal(""))
	})
})

var _ = Describe("extractDate", func() {
	It("prefers the labeled invoice date", func() {
		Expect(extractDate("Invoice Date: 2025-07-15 Due: 2025-08-15")).To(Equal("2025-07-15"))
	})

	It("finds a bare ISO date", func() {
		Expect(extractDate("issued 2025-07-15 thanks")).To(Equal("2025-07-15"))
	})

	It("normalizes a dashed US date to ISO", func() {
		Expect(extractDate("Invoice Date: 07-15-2025")).To(Equal("2025-07-15"))
	})

	It("returns empty when no date appears", func() {
		Expect(extractDate("no dates here")).To(Equal(""))
	})
})

var _ = Describe("extractCustomerName", func() {
	It("reads a labeled customer name", func() {
		Expect(extractCustomerName("Customer: John Smith Phone: 9876543210")).To(Equal("John Smith"))
	})

	It("falls back to two consecutive capitalized words", func() {
		Expect(extractCustomerName("invoice for Jane Doe dated")).To(Equal("Jane Doe"))
	})

	It("strips the trailing Phone artifact", func() {
		Expect(cleanName("John Smith Phone")).To(Equal("John Smith"))
	})

	It("strips punctuation from the captured name", func() {
		Expect(cleanName("John. Smith-")).To(Equal("John Smith"))
	})

	It("returns empty when nothing matches", func() {
		Expect(extractCustomerName("all lowercase text 123")).To(Equal(""))
	})
})

var _ = Describe("extractPhone", func() {
	It("reads a labeled phone number", func() {
		Expect(extractPhone("Phone: 98765-43210 Address")).To(Equal("9876543210"))
	})

	It("falls back to a bare digit run", func() {
		Expect(extractPhone("call 9876543210 today")).To(Equal("9876543210"))
	})

	It("ignores short digit runs", func() {
		Expect(extractPhone("order 12345")).To(Equal(""))
	})
})

var _ = Describe("extractAddress", func() {
	It("reads a labeled address and stops before the phone label", func() {
		Expect(extractAddress("Address: 12 Market Lane, Zurich Phone: 9876543210")).
			To(Equal("12 Market Lane, Zurich"))
	})

	It("fixes comma spacing", func() {
		Expect(extractAddress("Address: 12 Market Lane ,Zurich")).
			To(Equal("12 Market Lane, Zurich"))
	})

	It("anchors unlabeled addresses on a country name", func() {
		Expect(extractAddress("deliver to 44 High Street, London, UK please")).
			To(Equal("44 High Street, London, UK"))
	})

	It("strips the LTE status-bar artifact", func() {
		Expect(extractAddress("Address: 12 Market Lane, Zurich LTE $")).
			To(Equal("12 Market Lane, Zurich"))
	})

	It("returns empty when nothing matches", func() {
		Expect(extractAddress("no location data")).To(Equal(""))
	})
})

var _ = Describe("extractNotes", func() {
	It("reads labeled notes", func() {
		Expect(extractNotes("Notes: Payment due in 30 days")).To(Equal("Payment due in 30 days"))
	})

	It("stops before screen-capture junk", func() {
		Expect(extractNotes("Notes: Thank you Share Lens")).To(Equal("Thank you"))
	})

	It("stops before a status-bar timestamp", func() {
		Expect(extractNotes("Notes: Thank you 12:45")).To(Equal("Thank you"))
	})

	It("returns empty when nothing matches", func() {
		Expect(extractNotes("just an item table")).To(Equal(""))
	})
})
