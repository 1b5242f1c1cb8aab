// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the matching core, allowing the ledger and match-creation rules to
// remain independent of specific database technologies. The MatchStore
// additionally pins down the atomic conditional-write contract that the
// single-match-per-pair invariant relies on.
package store
