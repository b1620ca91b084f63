package trivia

import (
	"net"
	"net/http"
	"time"
)

// TransportConfig tunes the outbound http.Client.
type TransportConfig struct {
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// DefaultTransportConfig returns timeouts sized for a single small upstream.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		DialTimeout:         2 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        2 * time.Second,
		ResponseHeader:      3 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 16,
	}
}

// newHTTPClient builds an http.Client with a tuned transport. The overall
// request deadline comes from the context in Fetch, not Client.Timeout.
func newHTTPClient(cfg TransportConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}
	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}
	return &http.Client{Transport: tr}
}
