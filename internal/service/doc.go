// Package service provides application-level services for swiping,
// matching, admission control, and compatibility scoring.
//
// Services are constructed with their dependencies injected as interfaces
// (stores, quota counters, event sinks, task queues), which keeps the
// orchestration logic testable without a database or Redis instance.
//
// Error handling principles:
//  1. Service methods return sentinel or typed errors for expected error
//     conditions (e.g. RateLimitError for an exhausted quota).
//  2. Unexpected errors are wrapped in service-specific error types that
//     record the failed operation.
//  3. Callers use errors.Is/errors.As to check for specific conditions.
//  4. The API layer maps service errors to appropriate HTTP status codes.
package service
