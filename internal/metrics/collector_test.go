package metrics_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/velisarios/loadguard/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		collector = metrics.NewCollector(100, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
	})

	Describe("event processing", func() {
		It("should accumulate events sent on the channel", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventEvaluation,
				Timestamp: time.Now(),
				Breaker:   "load_average",
				Seen:      5.2,
				Allowed:   4.0,
				Tripped:   true,
			}
			collector.EventChannel() <- metrics.MetricEvent{
				Type:    metrics.EventRequestRejected,
				Breaker: "load_average",
			}

			Eventually(func() int64 {
				return collector.Snapshot().Rejected
			}).Should(Equal(int64(1)))

			bm := collector.Snapshot().Breakers["load_average"]
			Expect(bm.Trips).To(Equal(int64(1)))
			Expect(bm.LastSeen).To(Equal(5.2))
		})

		It("should drain buffered events on shutdown", func() {
			for i := 0; i < 10; i++ {
				collector.EventChannel() <- metrics.MetricEvent{
					Type: metrics.EventRequestAdmitted,
				}
			}

			collector.Start(ctx)
			cancel()

			Eventually(func() int64 {
				return collector.Snapshot().Admitted
			}).Should(Equal(int64(10)))
		})
	})

	Describe("Handler", func() {
		It("should serve the snapshot as JSON", func() {
			collector.Start(ctx)
			collector.EventChannel() <- metrics.MetricEvent{
				Type: metrics.EventRequestAdmitted,
			}

			Eventually(func() int64 {
				return collector.Snapshot().Admitted
			}).Should(Equal(int64(1)))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/metrics", nil)
			collector.Handler()(rec, req)

			Expect(rec.Code).To(Equal(200))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap metrics.Snapshot
			Expect(json.Unmarshal(rec.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.Admitted).To(Equal(int64(1)))
		})
	})
})
