package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("extractItems", func() {
	It("parses a row carrying the GST keyword", func() {
		items := extractItems("Charger GST 5% 10 10 105.00")
		Expect(items).To(HaveLen(1))
		Expect(items[0]).To(Equal(LineItem{
			Description: "Charger",
			Quantity:    10,
			Rate:        10,
			GSTPct:      5,
			Amount:      105.00,
		}))
	})

	It("parses a row with a bare percentage", func() {
		items := extractItems("Bottle 12% 3 40 134.40")
		Expect(items).To(HaveLen(1))
		Expect(items[0].Description).To(Equal("Bottle"))
		Expect(items[0].GSTPct).To(Equal(12.0))
		Expect(items[0].Amount).To(Equal(134.40))
	})

	It("defaults GST to zero when a row has no percentage", func() {
		items := extractItems("Mouse 2 450 900.00")
		Expect(items).To(HaveLen(1))
		Expect(items[0]).To(Equal(LineItem{
			Description: "Mouse",
			Quantity:    2,
			Rate:        450,
			GSTPct:      0,
			Amount:      900.00,
		}))
	})

	It("collects multiple rows", func() {
		items := extractItems("Charger GST 5% 10 10 105.00 Cable GST 18% 2 50 118.00")
		Expect(items).To(HaveLen(2))
		Expect(items[0].Description).To(Equal("Charger"))
		Expect(items[1].Description).To(Equal("Cable"))
	})

	It("drops rows whose description is table furniture", func() {
		items := extractTableRows("Total 1 105 105.00")
		Expect(items).To(BeEmpty())
	})

	It("drops rows with a too-short description", func() {
		items := extractTableRows("ab 1 105 105.00")
		Expect(items).To(BeEmpty())
	})

	It("parses comma-grouped amounts", func() {
		items := extractItems("Laptop GST 18% 1 85000 1,00,300.00")
		Expect(items).To(HaveLen(1))
		Expect(items[0].Amount).To(Equal(100300.00))
	})

	When("no structured row matches", func() {
		It("synthesizes placeholder items from numeric triplets", func() {
			items := extractItems("10 10 105.00")
			Expect(items).To(HaveLen(1))
			Expect(items[0]).To(Equal(LineItem{
				Description: "Item 1",
				Quantity:    10,
				Rate:        10,
				GSTPct:      18,
				Amount:      105.00,
			}))
		})

		It("numbers successive triplets", func() {
			items := extractItems("10 10 105.00 2 40 80.00")
			Expect(items).To(HaveLen(2))
			Expect(items[0].Description).To(Equal("Item 1"))
			Expect(items[1].Description).To(Equal("Item 2"))
		})

		It("caps the number of synthesized items", func() {
			text := ""
			for i := 0; i < 8; i++ {
				text += "1 2 3.00 x "
			}
			Expect(extractItems(text)).To(HaveLen(maxTripletItems))
		})
	})

	It("skips the triplet fallback once a structured row matched", func() {
		items := extractItems("Charger GST 5% 10 10 105.00 Total: 7 8 9.00")
		Expect(items).To(HaveLen(1))
		Expect(items[0].Description).To(Equal("Charger"))
	})

	It("returns an empty slice for empty text", func() {
		Expect(extractItems("")).To(BeEmpty())
	})
})
