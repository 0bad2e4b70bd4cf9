package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	It("returns the empty string for empty input", func() {
		Expect(Normalize("")).To(Equal(""))
	})

	It("collapses newlines and whitespace runs to single spaces", func() {
		Expect(Normalize("Invoice\n\nNumber:   INV-1234\r\nTotal")).
			To(Equal("Invoice Number: INV-1234 Total"))
	})

	It("replaces noise glyphs but keeps field punctuation", func() {
		Expect(Normalize("Total: $1,234.56 (paid) [GST 18%]")).
			To(Equal("Total: $1,234.56 paid GST 18%"))
	})

	It("strips control characters", func() {
		Expect(Normalize("a\x00\x01\x02b")).To(Equal("a b"))
	})

	It("is idempotent", func() {
		once := Normalize("  Invoice\t#42 \n @ home ")
		Expect(Normalize(once)).To(Equal(once))
	})

	It("fully collapses cascades of noise characters", func() {
		Expect(Normalize("a@#$%^&*()b")).To(Equal("a $% b"))
	})
})
