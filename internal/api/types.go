package api

import "time"

// Public JSON types returned by the API. These are intentionally decoupled
// from the internal core types to preserve API stability.

// NumberResponse is the payload for GET /number. Key names and their order
// are part of the public contract.
type NumberResponse struct {
	Number     int64    `json:"number"`
	IsPrime    bool     `json:"is_prime"`
	IsPerfect  bool     `json:"is_perfect"`
	Properties []string `json:"properties"`
	DigitSum   int      `json:"digit_sum"`
	FunFact    string   `json:"fun_fact"`
}

// NumberError is the 400 payload for input that is not a usable integer.
// Number echoes the raw query value.
type NumberError struct {
	Number string `json:"number"`
	Error  bool   `json:"error"`
}

// HealthResponse is the payload for GET /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// APIError is a standard error payload.
type APIError struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// TimeNow abstracts time for tests; overridden in tests.
var TimeNow = func() time.Time { return time.Now() }

func newAPIError(msg string) APIError {
	return APIError{
		Error:     msg,
		Timestamp: TimeNow().UTC().Format(time.RFC3339),
	}
}
