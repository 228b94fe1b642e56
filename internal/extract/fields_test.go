package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Field extractors", func() {
	Describe("ExtractDate", func() {
		It("should return the labelled date", func() {
			Expect(ExtractDate("Datum: 01.02.2023")).To(Equal("01.02.2023"))
		})

		It("should return the first date", func() {
			Expect(ExtractDate("Datum:03.04.2023\nDatum: 01.02.2023")).To(Equal("03.04.2023"))
		})

		It("should accept a no-break space after the label", func() {
			Expect(ExtractDate("Datum:\u00a001.02.2023")).To(Equal("01.02.2023"))
		})

		It("should return an empty string without a label", func() {
			Expect(ExtractDate("01.02.2023")).To(BeEmpty())
		})
	})

	Describe("ExtractDepot", func() {
		It("should return the depot digits", func() {
			Expect(ExtractDepot("Depot: 123456")).To(Equal("123456"))
		})

		It("should return an empty string when the label has no digits", func() {
			Expect(ExtractDepot("Depot: n/a")).To(BeEmpty())
		})

		It("should accept a no-break space after the label", func() {
			Expect(ExtractDepot("Depot:\u00a0123456")).To(Equal("123456"))
		})
	})

	Describe("ExtractPurchaseInfo", func() {
		var (
			text string
			info PurchaseInfo
		)

		JustBeforeEach(func() {
			info = ExtractPurchaseInfo(text)
		})

		When("the execution sentence is present", func() {
			BeforeEach(func() {
				text = "Kauf um 09:30 Uhr, am 01.02.2023 auf Xetra."
			})

			It("should return time, date and venue", func() {
				Expect(info).To(Equal(PurchaseInfo{Time: "09:30 Uhr", Date: "01.02.2023", Platform: "Xetra"}))
			})
		})

		When("the venue contains a space", func() {
			BeforeEach(func() {
				text = "Kauf um 09:30 Uhr, am 01.02.2023 auf Börse Stuttgart."
			})

			It("should capture the first word only", func() {
				Expect(info.Platform).To(Equal("Börse"))
			})
		})

		When("the sentence is missing", func() {
			BeforeEach(func() {
				text = "Verkauf am 01.02.2023"
			})

			It("should return empty fields", func() {
				Expect(info).To(Equal(PurchaseInfo{}))
			})
		})
	})

	Describe("ExtractNameAndAddress", func() {
		var (
			text     string
			identity Identity
		)

		JustBeforeEach(func() {
			identity = ExtractNameAndAddress(text)
		})

		When("an An line is followed by the buyer block", func() {
			BeforeEach(func() {
				text = "Kopf\n  An  \n Max Mustermann \nHauptstraße 1\n10115 Berlin\nDatum: 01.02.2023"
			})

			It("should read the three following lines", func() {
				Expect(identity).To(Equal(Identity{
					Name:    "Max Mustermann",
					Address: "Hauptstraße 1",
					City:    "10115 Berlin",
				}))
			})
		})

		When("no line is exactly An", func() {
			BeforeEach(func() {
				text = "Anschrift\nMax Mustermann\nHauptstraße 1\n10115 Berlin"
			})

			It("should return empty fields", func() {
				Expect(identity).To(Equal(Identity{}))
			})
		})

		When("fewer than three lines follow", func() {
			BeforeEach(func() {
				text = "An\nMax Mustermann\nHauptstraße 1"
			})

			It("should return empty fields", func() {
				Expect(identity).To(Equal(Identity{}))
			})
		})
	})

	Describe("ExtractNameAndAddressInvestbank", func() {
		var (
			text     string
			identity Identity
		)

		JustBeforeEach(func() {
			identity = ExtractNameAndAddressInvestbank(text)
		})

		When("the issuer sits three lines above the depot line", func() {
			BeforeEach(func() {
				text = "Investbank AG\nErika Musterfrau\nLindenweg 7\nDepot: 987654"
			})

			It("should take the name from two lines above", func() {
				Expect(identity).To(Equal(Identity{
					Name:    "Erika Musterfrau",
					Address: "Erika Musterfrau",
					City:    "Lindenweg 7",
				}))
			})
		})

		When("the buyer name sits three lines above the depot line", func() {
			BeforeEach(func() {
				text = "Kopf\nErika Musterfrau\nLindenweg 7\n80331 München\nDepot: 987654"
			})

			It("should take the name from three lines above", func() {
				Expect(identity).To(Equal(Identity{
					Name:    "Erika Musterfrau",
					Address: "Lindenweg 7",
					City:    "80331 München",
				}))
			})
		})

		When("the depot line has fewer than three lines above it", func() {
			BeforeEach(func() {
				text = "Erika Musterfrau\nLindenweg 7\nDepot: 987654"
			})

			It("should return empty fields", func() {
				Expect(identity).To(Equal(Identity{}))
			})
		})

		When("there is no depot line", func() {
			BeforeEach(func() {
				text = "a\nb\nc\nd"
			})

			It("should return empty fields", func() {
				Expect(identity).To(Equal(Identity{}))
			})
		})
	})

	Describe("FilterStreetNameInvestbank", func() {
		It("should keep the text before the date label", func() {
			Expect(FilterStreetNameInvestbank(" Lindenweg 7 Datum: 03.04.2023")).To(Equal("Lindenweg 7"))
		})

		It("should trim text without a date label", func() {
			Expect(FilterStreetNameInvestbank(" Lindenweg 7 ")).To(Equal("Lindenweg 7"))
		})
	})

	Describe("ExtractCityAndZip", func() {
		It("should skip the depot label before matching", func() {
			city, zip := ExtractCityAndZip("Depot: 987654 80331 München")
			Expect(city).To(Equal("München"))
			Expect(zip).To(Equal("80331"))
		})

		It("should accept no-break spaces around the depot label and postal code", func() {
			city, zip := ExtractCityAndZip("Depot:\u00a0987654\u00a080331\u00a0München")
			Expect(city).To(Equal("München"))
			Expect(zip).To(Equal("80331"))
		})

		It("should use the first matching line", func() {
			city, zip := ExtractCityAndZip("Kopf\n10115 Berlin\n80331 München")
			Expect(city).To(Equal("Berlin"))
			Expect(zip).To(Equal("10115"))
		})

		It("should return empty strings when nothing matches", func() {
			city, zip := ExtractCityAndZip("Depot: 987654\nDatum: 03.04.2023")
			Expect(city).To(BeEmpty())
			Expect(zip).To(BeEmpty())
		})
	})
})
