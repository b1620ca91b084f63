package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// CORSPolicy is the cross-origin policy for every route. It is passed by
// value in ServerOptions and never mutated after NewServer.
type CORSPolicy struct {
	AllowedOrigins []string // "*" allows any origin
	AllowedMethods []string
	AllowedHeaders []string // "*" allows any requested header
	MaxAge         time.Duration
}

// DefaultCORSPolicy allows any origin and header, GET only.
func DefaultCORSPolicy() CORSPolicy {
	return CORSPolicy{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"*"},
		MaxAge:         10 * time.Minute,
	}
}

func (p CORSPolicy) isZero() bool {
	return len(p.AllowedOrigins) == 0 && len(p.AllowedMethods) == 0 &&
		len(p.AllowedHeaders) == 0 && p.MaxAge == 0
}

// withDefaults fills only the empty list fields from DefaultCORSPolicy. A
// zero policy becomes the default policy, MaxAge included.
func (p CORSPolicy) withDefaults() CORSPolicy {
	d := DefaultCORSPolicy()
	if p.isZero() {
		return d
	}
	if len(p.AllowedOrigins) == 0 {
		p.AllowedOrigins = d.AllowedOrigins
	}
	if len(p.AllowedMethods) == 0 {
		p.AllowedMethods = d.AllowedMethods
	}
	if len(p.AllowedHeaders) == 0 {
		p.AllowedHeaders = d.AllowedHeaders
	}
	return p
}

// clone detaches the policy from caller-owned slices.
func (p CORSPolicy) clone() CORSPolicy {
	p.AllowedOrigins = append([]string(nil), p.AllowedOrigins...)
	p.AllowedMethods = append([]string(nil), p.AllowedMethods...)
	p.AllowedHeaders = append([]string(nil), p.AllowedHeaders...)
	return p
}

func (p CORSPolicy) options() cors.Options {
	return cors.Options{
		AllowedOrigins:     p.AllowedOrigins,
		AllowedMethods:     p.AllowedMethods,
		AllowedHeaders:     p.AllowedHeaders,
		MaxAge:             int(p.MaxAge.Seconds()),
		OptionsPassthrough: true,
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// withCORS applies the policy through rs/cors. Preflight requests pass
// through to terminatePreflight and never reach the mux.
func withCORS(next http.Handler, p CORSPolicy) http.Handler {
	c := cors.New(p.options())
	return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPreflight(r) {
			terminatePreflight(w)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// terminatePreflight answers a preflight after rs/cors has evaluated it. An
// approved preflight carries Access-Control-Allow-Origin; anything else is a
// 400 instead of a bare 204 the browser would have to interpret.
func terminatePreflight(w http.ResponseWriter) {
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		writeJSON(w, http.StatusBadRequest, newAPIError("disallowed CORS request"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
