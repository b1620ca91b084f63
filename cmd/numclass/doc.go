// Command numclass runs the number classification HTTP service.
//
// Usage:
//
//	numclass --listen 0.0.0.0:8000 --trivia-timeout 3s
//	numclass version
//
// Flags:
//
//	--config            optional config file (yaml, json, toml)
//	--listen            HTTP bind address (default 0.0.0.0:8000)
//	--shutdown-timeout  graceful shutdown timeout (default 5s)
//	--log-level         debug, info, warn, error (default info)
//	--log-development   human-readable console logs
//	--trivia-url        fun-fact provider base URL (default http://numbersapi.com)
//	--trivia-timeout    bound on each provider call (default 3s)
//
// Every setting can also come from NUMCLASS_* environment variables, e.g.
// NUMCLASS_TRIVIA_TIMEOUT=1s. Flags win over the environment, which wins
// over the config file.
//
// Behavior:
//
// Loads configuration, starts the API server, and blocks on SIGINT/SIGTERM
// for graceful shutdown.
package main
