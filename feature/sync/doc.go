// Package sync reconciles provider usage snapshots against the charge ledger.
//
// One run walks every active credential, fetches a normalized usage
// snapshot through the provider adapter registry, appends it to the usage
// log, and then reconciles the ledger:
//
//   - an explicitly linked charge gets its amount refreshed
//   - an unlinked charge whose supplier matches the provider name is
//     adopted and promoted to an explicit link
//   - a provider with no matching charge gets a new charge created
//   - a rejected credential leaves the ledger untouched
//
// Runs are mutually exclusive; a second trigger while one is active is
// rejected rather than queued. Provider failures never abort the run, they
// only mark that provider's result.
package sync
