package circuitbreaker_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/velisarios/loadguard/config"
	"github.com/velisarios/loadguard/internal/circuitbreaker"
)

func newTestBreaker(name string) circuitbreaker.CircuitBreaker {
	cfg := config.BreakerConfig{Enabled: true, Threshold: 1.0}
	switch name {
	case "cpu":
		return circuitbreaker.NewCPUWithSampler(cfg, &stubSampler{}, discardLogger())
	case "memory":
		return circuitbreaker.NewMemoryWithSampler(cfg, &stubSampler{}, discardLogger())
	default:
		return circuitbreaker.NewLoadAverageWithSampler(cfg, &stubSampler{}, discardLogger())
	}
}

var _ = Describe("Registry", func() {
	var registry *circuitbreaker.Registry

	BeforeEach(func() {
		registry = circuitbreaker.NewRegistry()
	})

	Describe("Register and Get", func() {
		It("should return a registered breaker by name", func() {
			cb := newTestBreaker("load_average")
			registry.Register(cb)

			got, ok := registry.Get("load_average")
			Expect(ok).To(BeTrue())
			Expect(got).To(BeIdenticalTo(cb))
		})

		It("should report a missing breaker", func() {
			_, ok := registry.Get("cpu")
			Expect(ok).To(BeFalse())
		})

		It("should replace a breaker registered under the same name", func() {
			first := newTestBreaker("cpu")
			second := newTestBreaker("cpu")
			registry.Register(first)
			registry.Register(second)

			got, ok := registry.Get("cpu")
			Expect(ok).To(BeTrue())
			Expect(got).To(BeIdenticalTo(second))
		})
	})

	Describe("GetOrCreate", func() {
		It("should build the breaker on first use", func() {
			built := 0
			cb := registry.GetOrCreate("memory", func() circuitbreaker.CircuitBreaker {
				built++
				return newTestBreaker("memory")
			})
			Expect(cb).NotTo(BeNil())
			Expect(built).To(Equal(1))
		})

		It("should return the same instance on subsequent calls", func() {
			first := registry.GetOrCreate("memory", func() circuitbreaker.CircuitBreaker {
				return newTestBreaker("memory")
			})
			second := registry.GetOrCreate("memory", func() circuitbreaker.CircuitBreaker {
				return newTestBreaker("memory")
			})
			Expect(second).To(BeIdenticalTo(first))
		})

		It("should hand concurrent callers the same instance", func() {
			const goroutines = 32

			results := make([]circuitbreaker.CircuitBreaker, goroutines)
			var wg sync.WaitGroup
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = registry.GetOrCreate("load_average", func() circuitbreaker.CircuitBreaker {
						return newTestBreaker("load_average")
					})
				}(i)
			}
			wg.Wait()

			for i := 1; i < goroutines; i++ {
				Expect(results[i]).To(BeIdenticalTo(results[0]))
			}
		})
	})

	Describe("All", func() {
		It("should list breakers in name order", func() {
			registry.Register(newTestBreaker("memory"))
			registry.Register(newTestBreaker("cpu"))
			registry.Register(newTestBreaker("load_average"))

			all := registry.All()
			Expect(all).To(HaveLen(3))
			Expect(all[0].Name()).To(Equal("cpu"))
			Expect(all[1].Name()).To(Equal("load_average"))
			Expect(all[2].Name()).To(Equal("memory"))
		})

		It("should return an empty slice for an empty registry", func() {
			Expect(registry.All()).To(BeEmpty())
		})
	})

	Describe("Reset", func() {
		It("should drop all registered breakers", func() {
			registry.Register(newTestBreaker("cpu"))
			registry.Reset()
			Expect(registry.All()).To(BeEmpty())
		})
	})

	Describe("Stats", func() {
		It("should report the enabled switch per breaker", func() {
			cpu := newTestBreaker("cpu")
			mem := newTestBreaker("memory")
			mem.Disable()
			registry.Register(cpu)
			registry.Register(mem)

			stats := registry.Stats()
			Expect(stats).To(HaveLen(2))
			Expect(stats["cpu"]).To(BeTrue())
			Expect(stats["memory"]).To(BeFalse())
		})
	})
})
