// Package handler implements the HTTP admission layer: it consults the
// registered circuit breakers before letting a request through to the
// protected handler. Rejected requests get a 503 with the tripping breaker's
// error message and an X-Rejected-By header naming it.
package handler
