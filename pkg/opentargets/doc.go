// Package opentargets provides a client for the Open Targets Platform
// GraphQL API.
//
// The client resolves disease identifiers (EFO, MONDO and ORPHA ids are
// used directly; free-text terms go through disease search first) and
// fetches the associated target list with per-target association scores.
// Responses are cached through a [cache.Cache] backend and transient
// failures are retried with exponential backoff.
package opentargets
