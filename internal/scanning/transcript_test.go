package scanning

import (
	"errors"
	"fmt"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("cleanTranscript", func() {
	ginkgo.DescribeTable("cleaning model replies",
		func(input, want string) {
			Expect(cleanTranscript(input)).To(Equal(want))
		},
		ginkgo.Entry("plain text", "A1. Squat\n3x10", "A1. Squat\n3x10"),
		ginkgo.Entry("surrounding whitespace", "\n  A1. Squat  \n", "A1. Squat"),
		ginkgo.Entry("fenced block", "```\nA1. Squat\n@ 135 lbs\n```", "A1. Squat\n@ 135 lbs"),
		ginkgo.Entry("fenced block with language", "```text\nA1. Squat\n```", "A1. Squat"),
		ginkgo.Entry("trailing spaces per line", "A1. Squat   \r\n3x10\t", "A1. Squat\n3x10"),
		ginkgo.Entry("only a fence", "```", ""),
	)

	ginkgo.It("should keep blank lines between blocks", func() {
		Expect(cleanTranscript("A1. Squat\n\nB1. Row")).To(Equal("A1. Squat\n\nB1. Row"))
	})
})

var _ = ginkgo.Describe("RecognitionError", func() {
	ginkgo.It("should name the engine and unwrap the cause", func() {
		cause := errors.New("boom")
		err := Fail("gemini", cause)

		Expect(err.Error()).To(Equal("gemini recognition failed: boom"))
		Expect(errors.Is(err, cause)).To(BeTrue())

		var recErr *RecognitionError
		Expect(errors.As(fmt.Errorf("processing: %w", err), &recErr)).To(BeTrue())
		Expect(recErr.Engine).To(Equal("gemini"))
	})

	ginkgo.It("should pass nil through", func() {
		Expect(Fail("gemini", nil)).To(BeNil())
	})
})
