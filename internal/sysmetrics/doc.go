// Package sysmetrics reads live operating-system metrics used by the circuit
// breakers: one-minute load average, CPU utilization and memory usage. It is
// the only place the process queries the OS; everything above it works with
// plain float64 samples.
//
// All readers return an error (with a negative sample value) when the
// platform does not expose the metric or the read fails. Callers are expected
// to treat that as "no reading", never as a confident measurement.
package sysmetrics
