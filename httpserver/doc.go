/*
Package httpserver runs the gateway's HTTP surface.

BaseServer owns the router and the server lifecycle. Components contribute
their endpoints through RouteRegistrar; the server adds the standard
middleware and the operational endpoints:

  - GET /livez - Liveness check
  - GET /readyz - Readiness check, 503 while draining
  - GET /drain - Mark server as not ready
  - GET /undrain - Mark server as ready
  - /debug/pprof - Profiling, when enabled

Every route is served with open CORS headers, since CCIP-read clients run in
browsers. An optional per-IP rate limit applies to the registered component
routes only; health probes are never limited.

Metrics are served by a separate listener, see the metrics package.
*/
package httpserver
