// Package integration models the boundary to external systems: configured
// integrations (ERP, risk rating provider), the per-attempt sync log, the retry
// policy, and the remote error taxonomy that drives retry decisions.
//
// A local record is always committed before any remote call. Remote failures
// annotate the local record's sync state; they never roll it back.
package integration
