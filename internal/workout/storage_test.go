package workout

import (
	"os"
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
		storage, err = NewLocalStorage(filepath.Join(tmpDir, "uploads"))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		It("should write the file and return its name", func() {
			name, err := storage.Save("w1_workout.png", []byte("img"))
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("w1_workout.png"))
			Expect(filepath.Join(tmpDir, "uploads", "w1_workout.png")).To(BeAnExistingFile())
		})

		It("should keep names inside the storage directory", func() {
			name, err := storage.Save("../escape.png", []byte("img"))
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("escape.png"))
			Expect(filepath.Join(tmpDir, "escape.png")).NotTo(BeAnExistingFile())
		})

		It("should reject names without a file component", func() {
			_, err := storage.Save("..", []byte("img"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("should read a saved file", func() {
			_, err := storage.Save("a.png", []byte("content"))
			Expect(err).NotTo(HaveOccurred())

			data, err := storage.Get("a.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("content")))
		})

		It("should fail for missing files", func() {
			_, err := storage.Get("missing.png")
			Expect(err).To(MatchError(ContainSubstring("reading file")))
		})
	})

	Describe("Delete", func() {
		It("should remove a saved file", func() {
			_, err := storage.Save("a.png", []byte("content"))
			Expect(err).NotTo(HaveOccurred())

			Expect(storage.Delete("a.png")).To(Succeed())
			_, statErr := os.Stat(filepath.Join(tmpDir, "uploads", "a.png"))
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})

		It("should fail for missing files", func() {
			Expect(storage.Delete("missing.png")).To(MatchError(ContainSubstring("deleting file")))
		})
	})
})
