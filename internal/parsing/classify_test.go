package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("classifyLine", func() {
	var (
		line   string
		result classifiedLine
	)

	JustBeforeEach(func() {
		result = classifyLine(line)
	})

	When("the line is blank", func() {
		BeforeEach(func() {
			line = "   \t "
		})

		It("should be classified as blank", func() {
			Expect(result.kind).To(Equal(lineBlank))
		})
	})

	When("the line starts with a letter and digit label", func() {
		BeforeEach(func() {
			line = "  A1. DB Bench Press  "
		})

		It("should start an exercise", func() {
			Expect(result.kind).To(Equal(lineExerciseStart))
		})

		It("should capture the trimmed label", func() {
			Expect(result.name).To(Equal("DB Bench Press"))
		})
	})

	When("the label has no period and several digits", func() {
		BeforeEach(func() {
			line = "C12 Goblet Squat"
		})

		It("should start an exercise", func() {
			Expect(result.kind).To(Equal(lineExerciseStart))
			Expect(result.name).To(Equal("Goblet Squat"))
		})
	})

	When("the label is lowercase", func() {
		BeforeEach(func() {
			line = "a1. Bench Press"
		})

		It("should be a continuation line", func() {
			Expect(result.kind).To(Equal(lineContinuation))
		})
	})

	When("the label has no text after it", func() {
		BeforeEach(func() {
			line = "A1."
		})

		It("should be a continuation line", func() {
			Expect(result.kind).To(Equal(lineContinuation))
		})
	})

	Describe("sets and reps", func() {
		DescribeTable("matching lines",
			func(input, sets, reps string) {
				c := classifyLine(input)
				Expect(c.kind).To(Equal(lineContinuation))
				Expect(c.sets).To(Equal(sets))
				Expect(c.reps).To(Equal(reps))
			},
			Entry("sets x reps", "3 sets x 10 reps", "3", "10"),
			Entry("compact", "3x10", "3", "10"),
			Entry("spaced x", "4 x 8", "4", "8"),
			Entry("singular words", "1 set 5 rep", "1", "5"),
			Entry("mixed case", "3 SETS X 12 Reps", "3", "12"),
			Entry("embedded in text", "Complete 5 sets of... 5x5 today", "5", "5"),
		)

		It("should not split a single number", func() {
			c := classifyLine("25 lbs")
			Expect(c.sets).To(BeEmpty())
			Expect(c.reps).To(BeEmpty())
		})
	})

	Describe("weight", func() {
		DescribeTable("matching lines",
			func(input string, value float64, unit string) {
				c := classifyLine(input)
				Expect(c.load).NotTo(BeNil())
				Expect(c.load.Value).To(Equal(value))
				Expect(c.load.Unit).To(Equal(unit))
			},
			Entry("pounds", "@ 25 lbs", 25.0, UnitPounds),
			Entry("no space", "@22.5kg", 22.5, UnitKilograms),
			Entry("default unit", "@ 135", 135.0, UnitPounds),
			Entry("singular pound", "@ 45 lb", 45.0, UnitPounds),
			Entry("uppercase unit", "@ 20 KG", 20.0, UnitKilograms),
			Entry("letter after the number", "@ 25x", 25.0, UnitPounds),
			Entry("letter after the unit", "@ 25lbsx2", 25.0, UnitPounds),
			Entry("per hand suffix", "@25kg/hand", 25.0, UnitKilograms),
		)

		It("should not flag bodyweight when a weight matched", func() {
			c := classifyLine("@ 10 lbs or BW")
			Expect(c.load).NotTo(BeNil())
			Expect(c.bodyweight).To(BeFalse())
		})
	})

	Describe("bodyweight", func() {
		It("should match BW", func() {
			Expect(classifyLine("BW").bodyweight).To(BeTrue())
		})

		It("should match Bodyweight case-insensitively", func() {
			Expect(classifyLine("use bodyweight only").bodyweight).To(BeTrue())
		})

		It("should not match inside another word", func() {
			Expect(classifyLine("BWR tempo").bodyweight).To(BeFalse())
		})
	})

	When("nothing structured matches", func() {
		BeforeEach(func() {
			line = "  Keep your core tight  "
		})

		It("should not be structured", func() {
			Expect(result.structured()).To(BeFalse())
		})

		It("should keep the trimmed text", func() {
			Expect(result.text).To(Equal("Keep your core tight"))
		})
	})
})

var _ = Describe("formatWeight", func() {
	It("should show total and per-hand load for dumbbells", func() {
		Expect(formatWeight(Load{Value: 22.5, Unit: UnitKilograms, PerHand: true})).
			To(Equal("45kg total, 22.5kg dumbbells in each hand"))
	})

	It("should show value and unit otherwise", func() {
		Expect(formatWeight(Load{Value: 135, Unit: UnitPounds})).To(Equal("135 lbs"))
	})
})

var _ = Describe("Load", func() {
	It("should double per-hand loads for the total", func() {
		Expect(Load{Value: 25, Unit: UnitPounds, PerHand: true}.Total()).To(Equal(50.0))
	})

	It("should convert pounds to kilograms", func() {
		Expect(Load{Value: 100, Unit: UnitPounds}.Kilograms()).To(BeNumerically("~", 45.359, 0.001))
	})

	It("should leave kilograms alone", func() {
		Expect(Load{Value: 20, Unit: UnitKilograms, PerHand: true}.Kilograms()).To(Equal(40.0))
	})
})
