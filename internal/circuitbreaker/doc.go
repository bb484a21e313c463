// Package circuitbreaker implements metric-gated circuit breakers for
// overload protection.
//
// Unlike the classic latching breaker (closed/open/half-open with timed
// recovery), these breakers are stateless threshold gates: every check
// samples a live system metric and compares it against a configured
// threshold. There is nothing to reset; the breaker clears as soon as the
// metric drops below the threshold.
//
// A breaker that cannot read its metric fails open: a missing or invalid
// reading never causes a rejection.
//
// Usage:
//
//	cb := circuitbreaker.NewLoadAverage(cfg.CircuitBreakers.LoadAverage, logger)
//	ev := cb.Evaluate()
//	if ev.Tripped {
//	    // Reject the request...
//	    reason := ev.ErrorMessage()
//	}
package circuitbreaker
