// Package watcher runs a background loop that evaluates the registered
// circuit breakers on an interval and logs state transitions, so operators
// see overload conditions even when no request happens to hit a tripped
// breaker.
package watcher
