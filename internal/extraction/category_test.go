package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	var (
		text     string
		category Category
	)

	JustBeforeEach(func() {
		category = Classify(text)
	})

	When("the text mentions a restaurant", func() {
		BeforeEach(func() {
			text = "RESTAURANT LE PETIT ZINC\nmenu du jour"
		})

		It("should classify as Restaurant regardless of case", func() {
			Expect(category).To(Equal(CategoryRestaurant))
		})
	})

	When("the text mentions a pharmacy", func() {
		BeforeEach(func() {
			text = "Pharmacie de la Gare\n2 boîtes"
		})

		It("should classify as Health", func() {
			Expect(category).To(Equal(CategoryHealth))
		})
	})

	When("the text mentions a supermarket", func() {
		BeforeEach(func() {
			text = "Supermarché Fictif\nTOTAL 45,90"
		})

		It("should classify as Purchases", func() {
			Expect(category).To(Equal(CategoryPurchases))
		})
	})

	When("keywords from two categories are present", func() {
		BeforeEach(func() {
			// taxi (Transport) and restaurant (Restaurant): the category
			// evaluated earlier in the fixed order wins.
			text = "course en taxi jusqu'au restaurant"
		})

		It("should pick the earlier category in the fixed order", func() {
			Expect(category).To(Equal(CategoryTransport))
		})
	})

	When("no configured keyword appears", func() {
		BeforeEach(func() {
			text = "quelque chose d'inclassable"
		})

		It("should fall back to Miscellaneous", func() {
			Expect(category).To(Equal(CategoryMiscellaneous))
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			text = ""
		})

		It("should fall back to Miscellaneous", func() {
			Expect(category).To(Equal(CategoryMiscellaneous))
		})
	})
})
