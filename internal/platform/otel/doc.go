// Package otel provides opt-in OpenTelemetry tracing for a BoardSmith host
// process, instrumenting performAction and broadcast fan-out with spans.
//
// Tracing is controlled by one environment variable:
//
//   - BOARDSMITH_OTEL_ENABLED — set to "false" to disable tracing. Enabled
//     by default.
//
// BoardSmith's core never talks to a collector itself (no transport adapter
// is in scope — see SPEC_FULL.md §10.3); [Setup] registers an in-process
// TracerProvider with no exporter attached, so spans are created and
// discarded unless the host process itself wires a processor. Call [Setup]
// once per process and defer the returned shutdown.
package otel
