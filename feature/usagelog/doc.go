// Package usagelog implements the append-only audit trail of provider
// usage fetches.
//
// Every sync attempt that produced a snapshot appends exactly one Entry,
// keyed by provider and billing period. There are no update or delete
// operations; the log is the historical record the dashboard charts are
// built from.
package usagelog
