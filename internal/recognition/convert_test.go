package recognition

import (
	"bytes"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("prepareImageData", func() {
	var (
		imageData   []byte
		contentType string
		prepared    []byte
		mimeType    string
		err         error
	)

	JustBeforeEach(func() {
		prepared, mimeType, err = prepareImageData(imageData, contentType)
	})

	When("the upload is a PNG", func() {
		BeforeEach(func() {
			imageData = testPNG()
			contentType = "image/png"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return PNG data", func() {
			Expect(mimeType).To(Equal("image/png"))
			_, decodeErr := png.Decode(bytes.NewReader(prepared))
			Expect(decodeErr).NotTo(HaveOccurred())
		})
	})

	When("the content type is missing", func() {
		BeforeEach(func() {
			imageData = testPNG()
			contentType = ""
		})

		// image.Decode sniffs the real format, the jpeg default is only
		// a hint
		It("should still decode by sniffing the data", func() {
			Expect(err).NotTo(HaveOccurred())
		})
	})

	When("the upload is not a decodable image", func() {
		BeforeEach(func() {
			imageData = []byte("definitely not an image")
			contentType = "image/jpeg"
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("isHEICFormat", func() {
	It("should detect the heic brand in the ftyp box", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypheic")...)
		data = append(data, make([]byte, 8)...)
		Expect(isHEICFormat(data)).To(BeTrue())
	})

	It("should reject PNG data", func() {
		Expect(isHEICFormat(testPNG())).To(BeFalse())
	})

	It("should reject short data", func() {
		Expect(isHEICFormat([]byte("tiny"))).To(BeFalse())
	})
})
