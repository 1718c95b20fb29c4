/*
Package observability exposes solver metrics in Prometheus format.

Metrics cover search outcomes, the raw work performed (frames stepped,
trials played, tree nodes explored), and search duration. The serve frontend
mounts them at /metrics.
*/
package observability
