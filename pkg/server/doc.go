// Package server exposes list rendering over HTTP and WebSocket.
//
// Routes:
//
//	GET  /healthz           liveness probe
//	GET  /metrics           Prometheus metrics (when a Gatherer is configured)
//	POST /render            run a patch script; ?snapshot=name stores the result
//	GET  /snapshots         list stored snapshots
//	GET  /snapshots/{name}  fetch a stored snapshot
//	GET  /ws                live mount: each message is one step
//
// A WebSocket connection owns a single mount. Each text message is a step in
// the patch script format, for example
//
//	{"name": "greet", "nodes": [{"text": "Hello"}, {"element": "div"}]}
//
// and is answered with {"seq", "name", "html", "mutations"} or, when the step
// is invalid or rendering fails, {"seq", "error", "code"}.
package server
