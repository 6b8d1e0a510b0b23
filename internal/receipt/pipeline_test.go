package receipt

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pipeline", func() {
	var (
		recognizer *mockRecognizer
		pipeline   *Pipeline
		record     *Record
		err        error
	)

	today := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		recognizer = newMockRecognizer(fixtureText)
	})

	JustBeforeEach(func() {
		pipeline = NewPipelineWithDeps(recognizer, time.Second, &fixedTimeSource{now: today})
		record, err = pipeline.Process(context.Background(), []byte("fake image data"), "image/png")
	})

	When("recognition succeeds on a complete receipt", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should extract the keyword-anchored total", func() {
			Expect(record.Amount).To(Equal(45.90))
		})

		It("should normalize the date", func() {
			Expect(record.Date).To(Equal("2025-10-13"))
		})

		It("should pick the first line as merchant", func() {
			Expect(record.Merchant).To(Equal("Supermarché Fictif"))
		})

		It("should classify the receipt", func() {
			Expect(record.Category).To(Equal("Purchases"))
		})

		It("should keep the stub fields at their fixed defaults", func() {
			Expect(record.VAT).To(Equal(0.0))
			Expect(record.Anomaly).To(BeFalse())
		})
	})

	When("the text has no date", func() {
		BeforeEach(func() {
			recognizer.text = "Supermarché Fictif\nTOTAL TTC 45,90€"
		})

		It("should substitute the current date", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Date).To(Equal("2026-01-15"))
		})
	})

	When("the text matches nothing at all", func() {
		BeforeEach(func() {
			recognizer.text = "   \nEtablissement Quelconque\nbonne journee"
		})

		It("should degrade every field to its default", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Amount).To(Equal(0.0))
			Expect(record.Date).To(Equal("2026-01-15"))
			Expect(record.Merchant).To(Equal("Etablissement Quelconque"))
			Expect(record.Category).To(Equal("Miscellaneous"))
		})
	})

	When("the text is all whitespace", func() {
		BeforeEach(func() {
			recognizer.text = " \n\t "
		})

		It("returns the error without a record", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no text recognized"))
			Expect(record).To(BeNil())
		})
	})

	When("recognition fails", func() {
		BeforeEach(func() {
			recognizer.err = errors.New("corrupt image")
		})

		It("returns the error without a record", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("recognizing text"))
			Expect(record).To(BeNil())
		})
	})
})
