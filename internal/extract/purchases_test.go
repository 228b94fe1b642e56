package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseAmount", func() {
	It("should strip thousands separators", func() {
		Expect(ParseAmount("1.234,56")).To(Equal(1234.56))
	})

	It("should convert the decimal comma", func() {
		Expect(ParseAmount("12,50")).To(Equal(12.5))
	})

	It("should handle several groups", func() {
		Expect(ParseAmount("1.234.567,89")).To(Equal(1234567.89))
	})

	It("returns the error for separators without digits", func() {
		_, err := ParseAmount(",")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("parsing amount"))
	})
})

var _ = Describe("FilterPurchases", func() {
	var (
		text  string
		items []LineItem
	)

	JustBeforeEach(func() {
		items = FilterPurchases(text)
	})

	When("the statement lists several securities", func() {
		BeforeEach(func() {
			text = Normalize(standardPage, DefaultProfile().Boilerplate, "Abrechnung")
		})

		It("should return them in order of appearance", func() {
			Expect(items).To(Equal([]LineItem{
				{Name: "Siemens AG", Quantity: 10, Value: 1234.56, Price: 12345.6},
				{Name: "BASF SE", Quantity: 5, Value: 45.1, Price: 225.5},
			}))
		})
	})

	When("the columns are separated by no-break spaces", func() {
		BeforeEach(func() {
			text = "Siemens AG\u00a010\u00a01.234,56\u00a012.345,60"
		})

		It("should extract the line item", func() {
			Expect(items).To(Equal([]LineItem{
				{Name: "Siemens AG", Quantity: 10, Value: 1234.56, Price: 12345.6},
			}))
		})
	})

	When("the digits are not ASCII", func() {
		BeforeEach(func() {
			text = "Siemens AG \u0663 \u0661\u0662,\u0665\u0660 \u0663\u0667,\u0665\u0660"
		})

		It("should parse them like ASCII digits", func() {
			Expect(items).To(Equal([]LineItem{
				{Name: "Siemens AG", Quantity: 3, Value: 12.5, Price: 37.5},
			}))
		})
	})

	When("a capture is only separators", func() {
		BeforeEach(func() {
			text = "Defekt 2 , 3,00\nBASF SE 5 45,10 225,50"
		})

		It("should skip that item and keep the rest", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("BASF SE"))
		})
	})

	When("there are no line items", func() {
		BeforeEach(func() {
			text = "Depot: 123456\nKeine Umsätze"
		})

		It("should return an empty list", func() {
			Expect(items).To(BeEmpty())
		})
	})
})

var _ = Describe("asciiDigits", func() {
	It("should fold Arabic-Indic and fullwidth digits", func() {
		Expect(asciiDigits("\u0660\u0669-\uff10\uff19")).To(Equal("09-09"))
	})

	It("should leave ASCII text alone", func() {
		Expect(asciiDigits("1.234,56 EUR")).To(Equal("1.234,56 EUR"))
	})
})

var _ = Describe("lineItem", func() {
	It("should compute the price from value and quantity when it is missing", func() {
		item, err := lineItem("Siemens AG", "4", "2,5", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(item.Price).To(Equal(item.Value * 4))
		Expect(item.Price).To(Equal(10.0))
	})

	It("should use the given price otherwise", func() {
		item, err := lineItem(" Siemens AG ", "4", "2,5", "11,00")
		Expect(err).NotTo(HaveOccurred())
		Expect(item).To(Equal(LineItem{Name: "Siemens AG", Quantity: 4, Value: 2.5, Price: 11}))
	})
})
