// Package charges implements the CRM expense ledger.
//
// A Charge is a recurring or one-time cost line entered by the user. The
// package exposes CRUD endpoints for the dashboard and a Store interface
// consumed by the sync feature, which co-writes amounts and auto-link
// metadata on charges it recognizes.
//
// # Ownership
//
// The manual workflow owns every user-entered field. The sync engine only
// writes the amount, a dated notes annotation, and the auto_provider /
// auto_credential_id / last_auto_update metadata.
package charges
