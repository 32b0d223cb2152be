/*
Package observability turns compiler hooks into metrics and logs.

Metrics registers Prometheus collectors and exposes them as domain.Hooks, LogHooks writes
the same events to a slog.Logger, and Combine fans one event out to several hook sets.
*/
package observability
