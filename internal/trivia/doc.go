// Package trivia fetches fun facts about numbers from an external provider.
//
// # Overview
//
// The provider (numbersapi.com by default) is best-effort: it may be slow,
// unavailable, or return errors. Fetch performs one bounded GET request per
// call and always returns a usable Fact. When the provider fails, the Fact
// carries the configured fallback text and Fetch also returns an error so
// callers can log the cause.
//
// # Request
//
// GET {BaseURL}/{n}/{Category}, with Category "math" by default. A 2xx
// response body is returned verbatim as the fact text (bounded by
// MaxBodyBytes). Anything else falls back.
//
// # Bounds
//
// Config.Timeout bounds the whole exchange on top of the caller's context.
// The underlying http.Client carries its own dial, TLS, and header timeouts.
// There are no retries and no caching; each call hits the provider.
//
// Client is safe for concurrent use.
package trivia
