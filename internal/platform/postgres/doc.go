// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package: profiles, the
// swipe ledger, and matches. It owns query execution, row mapping, and the
// translation of driver errors into store sentinels, including the partial
// unique index semantics behind conditional match creation.
package postgres
