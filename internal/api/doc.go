// Package api exposes the number classification service over HTTP.
//
// # Separation of Concerns
//
// The api package defines public JSON types (decoupled from core), maps
// core.Analysis values to JSON, and hosts an HTTP server with a small
// middleware chain. The core package remains unaware of HTTP or JSON, and the
// trivia provider is reached through the FactSource interface.
//
// # Server
//
// NewServer wires handlers onto a ServeMux and configures timeouts.
// ListenAndServe blocks until Stop is called; Stop performs graceful shutdown
// bounded by ShutdownTimeout. The middleware chain recovers panics, assigns a
// request id (X-Request-ID), writes a zap access log line, sets the JSON
// content type, and applies the CORS policy.
//
// # Error Model
//
// Rejected numbers produce the fixed 400 payload {"number": raw, "error": true}.
// Every other error uses APIError with an RFC3339 timestamp. Trivia provider
// failures never surface as errors: the response carries the fallback fact.
//
// # Endpoints
//
//   - GET /number?number=N: classification plus fun fact
//   - GET /healthz: liveness
package api
