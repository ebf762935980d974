package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/workout-csv/internal/parsing"
)

var _ = Describe("ToRows", func() {
	var (
		equipment parsing.EquipmentSet
		records   []parsing.ExerciseRecord
		rows      []Row
	)

	BeforeEach(func() {
		equipment = parsing.NewEquipmentSet("Dumbbells", "Barbell")
		records = []parsing.ExerciseRecord{
			{Name: "DB Bench Press", Equipment: "Dumbbells", Weight: "50lbs total, 25lbs dumbbells in each hand", Sets: "3", Reps: "10", MuscleGroup: "Chest", DemoLink: "https://example.com/DB+Bench+Press"},
			{Name: "BB Row", Equipment: "Barbell", Weight: "N/A", Sets: "N/A", Reps: "N/A", Notes: "Squeeze", MuscleGroup: "Unknown"},
		}
	})

	JustBeforeEach(func() {
		rows = ToRows("Push Focus, Pull Focus", equipment, records, "Apr 7, 2026")
	})

	It("should produce one row per record in order", func() {
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Exercise).To(Equal("DB Bench Press"))
		Expect(rows[1].Exercise).To(Equal("BB Row"))
	})

	It("should repeat the workout-wide fields", func() {
		for _, row := range rows {
			Expect(row.Summary).To(Equal("Push Focus, Pull Focus"))
			Expect(row.TotalEquipment).To(Equal("Dumbbells, Barbell"))
			Expect(row.Date).To(Equal("Apr 7, 2026"))
		}
	})

	It("should copy the record fields", func() {
		Expect(rows[0]).To(Equal(Row{
			Summary:        "Push Focus, Pull Focus",
			TotalEquipment: "Dumbbells, Barbell",
			Exercise:       "DB Bench Press",
			Equipment:      "Dumbbells",
			Weight:         "50lbs total, 25lbs dumbbells in each hand",
			Sets:           "3",
			Reps:           "10",
			MuscleGroup:    "Chest",
			Demo:           "https://example.com/DB+Bench+Press",
			Date:           "Apr 7, 2026",
		}))
	})

	When("no equipment was used", func() {
		BeforeEach(func() {
			equipment = parsing.EquipmentSet{}
		})

		It("should report None", func() {
			Expect(rows[0].TotalEquipment).To(Equal("None"))
		})
	})

	When("there are no records", func() {
		BeforeEach(func() {
			records = nil
		})

		It("should produce no rows", func() {
			Expect(rows).NotTo(BeNil())
			Expect(rows).To(BeEmpty())
		})
	})
})

var _ = Describe("WriteCSV", func() {
	var (
		rows []Row
		buf  bytes.Buffer
		err  error
	)

	JustBeforeEach(func() {
		buf.Reset()
		err = WriteCSV(&buf, rows)
	})

	When("there are no rows", func() {
		BeforeEach(func() {
			rows = ToRows("General Workout", parsing.EquipmentSet{}, nil, parsing.UnknownDate)
		})

		It("should write only the header", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(Equal("Summary,Total Equipment,Exercise,Equipment,Weight,Sets,Reps,Notes,Muscle Group,Demo,Date\n"))
		})
	})

	When("fields contain delimiters and quotes", func() {
		BeforeEach(func() {
			rows = []Row{{
				Summary:        "Leg Day, Push Focus",
				TotalEquipment: "Dumbbells, Barbell",
				Exercise:       `Front Squat "heavy"`,
				Equipment:      "Barbell",
				Weight:         "50lbs total, 25lbs dumbbells in each hand",
				Sets:           "3",
				Reps:           "10",
				Notes:          "line one\nline two",
				MuscleGroup:    "Quads, Glutes",
				Demo:           "https://www.youtube.com/results?search_query=Front+Squat+demonstration",
				Date:           "Apr 7, 2026",
			}}
		})

		It("should round-trip through a CSV reader", func() {
			Expect(err).NotTo(HaveOccurred())

			records, readErr := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
			Expect(readErr).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0]).To(Equal(Header))
			Expect(records[1]).To(Equal(rows[0].fields()))
		})

		It("should quote fields containing commas", func() {
			Expect(buf.String()).To(ContainSubstring(`"Leg Day, Push Focus"`))
			Expect(buf.String()).To(ContainSubstring(`"Front Squat ""heavy"""`))
		})
	})
})

var _ = Describe("CSV", func() {
	It("should return the rendered bytes", func() {
		data, err := CSV(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(HavePrefix("Summary,Total Equipment"))
	})
})

var _ = Describe("ResultRows", func() {
	It("should flatten a parse result", func() {
		result := parsing.Parse("Apr 7, 2025\nA1. BB Deadlift\n5x3\n@ 315", nil, time.Now())
		rows := ResultRows(result)
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].Exercise).To(Equal("BB Deadlift"))
		Expect(rows[0].Weight).To(Equal("315 lbs"))
		Expect(rows[0].TotalEquipment).To(Equal("Barbell"))
		Expect(rows[0].Date).To(Equal("Apr 7, 2025"))
	})
})

var _ = Describe("Filename", func() {
	DescribeTable("building names",
		func(date, ext, want string) {
			Expect(Filename(date, ext)).To(Equal(want))
		},
		Entry("date with year", "Apr 7, 2026", "csv", "workout_Apr_7_2026.csv"),
		Entry("unknown date", "Unknown Date", "csv", "workout_Unknown_Date.csv"),
		Entry("stray separators", "Apr 7,2026/x", "fit", "workout_Apr_7_2026_x.fit"),
	)
})
