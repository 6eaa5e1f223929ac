/*
Package http exposes a ports.SessionStore through a small chi router.

It is an operations surface (inspect, expire, remove sessions) and not the
session manager itself:

	GET    /sessions/{id}             200 record JSON, 404 when absent, 422 when corrupt
	PUT    /sessions/{id}?ttl=30m     204, body is the record JSON; no ttl means Infinity
	POST   /sessions/{id}/touch?ttl=  204, also for missing sessions
	DELETE /sessions/{id}             204, also for missing sessions
	GET    /healthz                   200
	GET    /metrics                   Prometheus exposition, when WithMetrics is used
*/
package http
