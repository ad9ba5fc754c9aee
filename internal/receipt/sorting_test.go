package receipt

import (
	"errors"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("sortReceipts", func() {
	var (
		entries  []Entry
		criteria SortCriteria
		rows     []SortedReceipt
		err      error
	)

	ginkgo.BeforeEach(func() {
		entries = nil
	})

	ginkgo.JustBeforeEach(func() {
		rows, err = sortReceipts(entries, criteria)
	})

	ginkgo.When("the criteria is unrecognized", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortCriteria("price")
		})

		ginkgo.It("returns an InvalidArgumentError naming the valid values", func() {
			var invalidArg *InvalidArgumentError
			Expect(errors.As(err, &invalidArg)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("total, date, points"))
		})
	})

	ginkgo.When("the criteria is blank", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortCriteria("")
		})

		ginkgo.It("returns an InvalidArgumentError", func() {
			var invalidArg *InvalidArgumentError
			Expect(errors.As(err, &invalidArg)).To(BeTrue())
		})
	})

	ginkgo.Describe("sorting by points", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortByPoints
			entries = []Entry{
				{ID: "id-75", Receipt: &Receipt{Total: "75.00"}},
				{ID: "id-90", Receipt: &Receipt{Retailer: "Target123", Total: "100.00", PurchaseDate: "2025-02-07"}},
				{ID: "id-80", Receipt: &Receipt{Retailer: "Store", Total: "100.00"}},
			}
		})

		ginkgo.It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		ginkgo.It("orders receipts by descending recomputed points", func() {
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].ID).To(Equal("id-90"))
			Expect(rows[1].ID).To(Equal("id-80"))
			Expect(rows[2].ID).To(Equal("id-75"))
		})

		ginkgo.It("includes the recomputed points in each row", func() {
			Expect(rows[0].Points).To(Equal(90))
			Expect(rows[1].Points).To(Equal(80))
			Expect(rows[2].Points).To(Equal(75))
		})
	})

	ginkgo.Describe("sorting by total", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortByTotal
			entries = []Entry{
				{ID: "mid", Receipt: &Receipt{Total: "5.00"}},
				{ID: "junk", Receipt: &Receipt{Total: "not-a-total"}},
				{ID: "high", Receipt: &Receipt{Total: "10.50"}},
			}
		})

		ginkgo.It("orders ascending with unparseable totals treated as zero", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ID).To(Equal("junk"))
			Expect(rows[1].ID).To(Equal("mid"))
			Expect(rows[2].ID).To(Equal("high"))
		})
	})

	ginkgo.Describe("sorting by date", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortByDate
			entries = []Entry{
				{ID: "old", Receipt: &Receipt{PurchaseDate: "2024-12-31"}},
				{ID: "none", Receipt: &Receipt{}},
				{ID: "new", Receipt: &Receipt{PurchaseDate: "2025-02-07"}},
				{ID: "bad", Receipt: &Receipt{PurchaseDate: "oops"}},
			}
		})

		ginkgo.It("orders valid dates most recent first and malformed dates last", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ID).To(Equal("new"))
			Expect(rows[1].ID).To(Equal("old"))
			// Malformed dates rank after all valid ones, by raw string
			// descending: "oops" before the "N/A" placeholder.
			Expect(rows[2].ID).To(Equal("bad"))
			Expect(rows[3].ID).To(Equal("none"))
		})
	})

	ginkgo.Describe("projection", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortByPoints
			entries = []Entry{
				{ID: "blank", Receipt: &Receipt{}},
				{ID: "gone", Receipt: nil},
			}
		})

		ginkgo.It("substitutes placeholders for blank total and date", func() {
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Total).To(Equal("0.00"))
			Expect(rows[0].Date).To(Equal("N/A"))
		})

		ginkgo.It("skips entries without a receipt instead of emitting empty rows", func() {
			for _, row := range rows {
				Expect(row.ID).NotTo(Equal("gone"))
			}
		})
	})

	ginkgo.When("points tie", func() {
		ginkgo.BeforeEach(func() {
			criteria = SortByPoints
			entries = []Entry{
				{ID: "first", Receipt: &Receipt{Total: "75.00"}},
				{ID: "second", Receipt: &Receipt{Total: "75.00"}},
			}
		})

		ginkgo.It("keeps the input order for determinism", func() {
			Expect(rows[0].ID).To(Equal("first"))
			Expect(rows[1].ID).To(Equal("second"))
		})
	})
})
