// Package core owns number classification.
//
// # Overview
//
// The core package holds the pure numeric predicates (primality, perfection,
// Armstrong status, digit sum, parity) and the Analysis value object the API
// layer serializes. It knows nothing about HTTP, JSON, or the trivia provider.
//
// Predicates
//
//   - IsPrime:     deterministic Miller-Rabin over uint64; false below 2
//   - IsPerfect:   sum of proper divisors equals n (Euclid-Euler form)
//   - IsArmstrong: sum of digits raised to the digit count equals n
//   - DigitSum:    sum of decimal digits
//   - Parity:      "even" or "odd"
//
// All predicates are total over int64, run in time logarithmic in n, and are
// safe for concurrent use. Digit
// decomposition works on the absolute value, so negative inputs never panic;
// the API rejects them before they get here (see ParseNumber).
//
// # Properties
//
// Properties returns an ordered tag list: "armstrong" first when it applies,
// then exactly one parity tag. The order is part of the wire contract.
//
// # Input
//
// ParseNumber converts the raw query text into an int64 and returns a
// *ValidationError wrapping ErrNotInteger or ErrNegative on failure.
package core
