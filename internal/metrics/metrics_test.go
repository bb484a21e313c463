package metrics_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/velisarios/loadguard/internal/metrics"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("RecordEvaluation", func() {
		It("should count evaluations per breaker", func() {
			m.RecordEvaluation("load_average", 1.0, 4.0, false)
			m.RecordEvaluation("load_average", 2.0, 4.0, false)
			m.RecordEvaluation("cpu", 50.0, 90.0, false)

			snap := m.Snapshot()
			Expect(snap.Breakers["load_average"].Evaluations).To(Equal(int64(2)))
			Expect(snap.Breakers["cpu"].Evaluations).To(Equal(int64(1)))
		})

		It("should count trips separately", func() {
			m.RecordEvaluation("load_average", 5.0, 4.0, true)
			m.RecordEvaluation("load_average", 1.0, 4.0, false)

			bm := m.Snapshot().Breakers["load_average"]
			Expect(bm.Evaluations).To(Equal(int64(2)))
			Expect(bm.Trips).To(Equal(int64(1)))
		})

		It("should keep the most recent observed pair", func() {
			m.RecordEvaluation("load_average", 5.0, 4.0, true)
			m.RecordEvaluation("load_average", 1.5, 4.0, false)

			bm := m.Snapshot().Breakers["load_average"]
			Expect(bm.LastSeen).To(Equal(1.5))
			Expect(bm.LastAllowed).To(Equal(4.0))
		})
	})

	Describe("RecordAdmission and RecordRejection", func() {
		It("should count totals", func() {
			m.RecordAdmission()
			m.RecordAdmission()
			m.RecordRejection("cpu")

			snap := m.Snapshot()
			Expect(snap.Admitted).To(Equal(int64(2)))
			Expect(snap.Rejected).To(Equal(int64(1)))
			Expect(snap.Breakers["cpu"].Rejections).To(Equal(int64(1)))
		})
	})

	Describe("Snapshot", func() {
		It("should be empty for a fresh store", func() {
			snap := m.Snapshot()
			Expect(snap.Admitted).To(BeZero())
			Expect(snap.Rejected).To(BeZero())
			Expect(snap.Breakers).To(BeEmpty())
		})

		It("should report uptime", func() {
			Expect(m.Snapshot().Uptime).To(BeNumerically(">=", 0))
		})
	})
})
