package scanning

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func pngBytes(img image.Image) []byte {
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

func jpegBytes(img image.Image) []byte {
	var buf bytes.Buffer
	Expect(jpeg.Encode(&buf, img, nil)).To(Succeed())
	return buf.Bytes()
}

var _ = ginkgo.Describe("PrepareImage", func() {
	var (
		input       []byte
		contentType string
		output      []byte
		err         error
	)

	ginkgo.JustBeforeEach(func() {
		output, err = PrepareImage(input, contentType)
	})

	ginkgo.When("the image is already PNG", func() {
		ginkgo.BeforeEach(func() {
			input = pngBytes(solidImage(4, 4))
			contentType = "image/png"
		})

		ginkgo.It("should return the data unchanged", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(output).To(Equal(input))
		})
	})

	ginkgo.When("the image is JPEG", func() {
		ginkgo.BeforeEach(func() {
			input = jpegBytes(solidImage(8, 6))
			contentType = " IMAGE/JPEG "
		})

		ginkgo.It("should convert to PNG", func() {
			Expect(err).NotTo(HaveOccurred())
			_, format, decodeErr := image.Decode(bytes.NewReader(output))
			Expect(decodeErr).NotTo(HaveOccurred())
			Expect(format).To(Equal("png"))
		})
	})

	ginkgo.When("no content type is given", func() {
		ginkgo.BeforeEach(func() {
			input = jpegBytes(solidImage(2, 2))
			contentType = ""
		})

		ginkgo.It("should sniff the format", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(output).NotTo(BeEmpty())
		})
	})

	ginkgo.When("the data is not an image", func() {
		ginkgo.BeforeEach(func() {
			input = []byte("definitely not pixels")
			contentType = "image/webp"
		})

		ginkgo.It("should list the supported formats", func() {
			Expect(err).To(MatchError(ContainSubstring("Supported formats")))
		})
	})

	ginkgo.When("the data is empty", func() {
		ginkgo.BeforeEach(func() {
			input = nil
			contentType = "image/png"
		})

		ginkgo.It("should return an error", func() {
			Expect(err).To(MatchError("image is empty"))
		})
	})
})

var _ = ginkgo.Describe("PreprocessForOCR", func() {
	ginkgo.It("should upscale narrow screenshots to grayscale", func() {
		out, err := PreprocessForOCR(pngBytes(solidImage(500, 100)))
		Expect(err).NotTo(HaveOccurred())

		img, _, err := image.Decode(bytes.NewReader(out))
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(1500))
		Expect(img.Bounds().Dy()).To(Equal(300))
		Expect(img.ColorModel()).To(Equal(color.GrayModel))
	})

	ginkgo.It("should keep wide screenshots at their size", func() {
		out, err := PreprocessForOCR(pngBytes(solidImage(1300, 10)))
		Expect(err).NotTo(HaveOccurred())

		img, _, err := image.Decode(bytes.NewReader(out))
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(1300))
	})
})

var _ = ginkgo.Describe("upscaleFactor", func() {
	ginkgo.DescribeTable("choosing a factor",
		func(width, want int) {
			Expect(upscaleFactor(width)).To(Equal(want))
		},
		ginkgo.Entry("wide enough", 1200, 1),
		ginkgo.Entry("slightly narrow", 1000, 2),
		ginkgo.Entry("very narrow", 100, 3),
		ginkgo.Entry("zero width", 0, 1),
	)
})

var _ = ginkgo.Describe("isHEICFormat", func() {
	ginkgo.It("should detect an ftyp heic brand", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypheic")...)
		Expect(isHEICFormat(data)).To(BeTrue())
	})

	ginkgo.It("should reject short data", func() {
		Expect(isHEICFormat([]byte("ftyp"))).To(BeFalse())
	})
})
