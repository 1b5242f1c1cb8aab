// Package events provides the telemetry event model for the matching core.
//
// Swipe-feature extraction, match-created notifications and admission-control
// fallbacks are published as events so the services emitting them stay
// decoupled from whatever consumes them (ML feature pipelines, notification
// fan-out, log aggregation). Emission is always best-effort: a failing sink
// is a TelemetryFailure, logged and never propagated to the user action
// that produced it.
package events
