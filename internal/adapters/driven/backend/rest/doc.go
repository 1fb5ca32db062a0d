// Package rest implements the driven backend ports over the tagging
// server's REST API.
//
// Every call waits on a token bucket and runs through a circuit breaker.
// Nothing is retried: a failed call is reported to the caller once.
package rest
