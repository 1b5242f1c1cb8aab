// Package task manages background work the swipe path must never wait on:
// swipe-feature telemetry and total-match counter bumps. It provides a
// bounded in-memory queue and a worker pool with structured logging on
// failure. Tasks here are deliberately not persisted — losing telemetry on
// a crash is acceptable, blocking a like on it is not.
package task
