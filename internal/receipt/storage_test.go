package receipt

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save and Get", func() {
		It("should round-trip an upload", func() {
			savedPath, err := storage.Save("12345_recu.jpg", []byte("image bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(savedPath).To(Equal("12345_recu.jpg"))

			data, err := storage.Get(savedPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("image bytes"))
		})

		It("should write under the upload directory", func() {
			_, err := storage.Save("12345_recu.jpg", []byte("image bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Join(tmpDir, "12345_recu.jpg")).To(BeAnExistingFile())
		})

		It("returns the error for a missing file", func() {
			_, err := storage.Get("nonexistent.jpg")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("reading file"))
		})
	})

	Describe("Delete", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("12345_recu.jpg", []byte("image bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the file from disk", func() {
				Expect(storage.Delete("12345_recu.jpg")).To(Succeed())
				Expect(filepath.Join(tmpDir, "12345_recu.jpg")).NotTo(BeAnExistingFile())
			})
		})

		When("the file does not exist", func() {
			It("returns the error", func() {
				err := storage.Delete("nonexistent.jpg")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("deleting file"))
			})
		})
	})

	Describe("NewLocalStorage", func() {
		It("should create a missing upload directory", func() {
			path := filepath.Join(GinkgoT().TempDir(), "uploads")
			store, err := NewLocalStorage(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(BeADirectory())

			_, err = store.Save("recu.jpg", []byte("data"))
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
