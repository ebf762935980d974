package parsing

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DefaultCatalog", func() {
	It("should carry the dumbbell and barbell rules first", func() {
		c := DefaultCatalog()
		Expect(c.Equipment[0].Name).To(Equal("Dumbbells"))
		Expect(c.Equipment[1].Name).To(Equal("Barbell"))
	})

	It("should return independent copies", func() {
		a := DefaultCatalog()
		a.MuscleGroups["Squat"] = "Changed"
		Expect(DefaultCatalog().MuscleGroups["Squat"]).To(Equal("Quads, Glutes, Hamstrings"))
	})

	It("should validate", func() {
		Expect(DefaultCatalog().validate()).To(Succeed())
	})
})

var _ = Describe("ParseCatalog", func() {
	var (
		data    string
		catalog *Catalog
		err     error
	)

	JustBeforeEach(func() {
		catalog, err = ParseCatalog([]byte(data))
	})

	When("only some sections are present", func() {
		BeforeEach(func() {
			data = `
muscle_groups:
  Hip Thrust: "Glutes"
`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should use the given section", func() {
			Expect(catalog.MuscleGroups).To(Equal(map[string]string{"Hip Thrust": "Glutes"}))
		})

		It("should inherit the missing sections", func() {
			def := DefaultCatalog()
			Expect(catalog.Equipment).To(Equal(def.Equipment))
			Expect(catalog.Summary).To(Equal(def.Summary))
			Expect(catalog.DemoURL).To(Equal(def.DemoURL))
		})
	})

	When("a rule has no keywords", func() {
		BeforeEach(func() {
			data = `
equipment:
  - name: Sandbag
`
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("at least one keyword")))
		})
	})

	When("a rule has no name", func() {
		BeforeEach(func() {
			data = `
summary:
  - keywords: ["Curl"]
`
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("name is required")))
		})
	})

	When("the demo url has no placeholder", func() {
		BeforeEach(func() {
			data = `demo_url: "https://example.com"`
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("placeholder")))
		})
	})

	When("the yaml is invalid", func() {
		BeforeEach(func() {
			data = "equipment: [unterminated"
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("LoadCatalog", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	When("the file exists", func() {
		It("should load it", func() {
			path := filepath.Join(tmpDir, "catalog.yaml")
			Expect(os.WriteFile(path, []byte(`demo_url: "https://example.com/?q=%s"`), 0644)).To(Succeed())

			c, err := LoadCatalog(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.DemoURL).To(Equal("https://example.com/?q=%s"))
		})
	})

	When("the file does not exist", func() {
		It("returns the error", func() {
			_, err := LoadCatalog(filepath.Join(tmpDir, "missing.yaml"))
			Expect(err).To(MatchError(ContainSubstring("reading catalog file")))
		})
	})
})
