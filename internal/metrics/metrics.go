package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mutex       sync.RWMutex
	evaluations map[string]int64
	trips       map[string]int64
	rejections  map[string]int64
	lastSeen    map[string]float64
	lastAllowed map[string]float64
	admitted    int64
	rejected    int64
	startTime   time.Time
}

type Snapshot struct {
	Uptime   time.Duration             `json:"uptime"`
	Admitted int64                     `json:"admitted"`
	Rejected int64                     `json:"rejected"`
	Breakers map[string]BreakerMetrics `json:"breakers"`
}

type BreakerMetrics struct {
	Evaluations int64   `json:"evaluations"`
	Trips       int64   `json:"trips"`
	Rejections  int64   `json:"rejections"`
	LastSeen    float64 `json:"last_seen"`
	LastAllowed float64 `json:"last_allowed"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		evaluations: make(map[string]int64),
		trips:       make(map[string]int64),
		rejections:  make(map[string]int64),
		lastSeen:    make(map[string]float64),
		lastAllowed: make(map[string]float64),
		startTime:   time.Now(),
	}
}

func (m *Metrics) RecordEvaluation(breaker string, seen, allowed float64, tripped bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.evaluations[breaker]++
	m.lastSeen[breaker] = seen
	m.lastAllowed[breaker] = allowed
	if tripped {
		m.trips[breaker]++
	}
}

func (m *Metrics) RecordAdmission() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.admitted++
}

func (m *Metrics) RecordRejection(breaker string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rejected++
	m.rejections[breaker]++
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:   time.Since(m.startTime),
		Admitted: m.admitted,
		Rejected: m.rejected,
		Breakers: make(map[string]BreakerMetrics),
	}

	// Collect every breaker name seen on any counter
	allBreakers := make(map[string]bool)
	for breaker := range m.evaluations {
		allBreakers[breaker] = true
	}
	for breaker := range m.rejections {
		allBreakers[breaker] = true
	}

	for breaker := range allBreakers {
		snap.Breakers[breaker] = BreakerMetrics{
			Evaluations: m.evaluations[breaker],
			Trips:       m.trips[breaker],
			Rejections:  m.rejections[breaker],
			LastSeen:    m.lastSeen[breaker],
			LastAllowed: m.lastAllowed[breaker],
		}
	}

	return snap
}
