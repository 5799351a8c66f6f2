// Package provider defines the billing provider adapter boundary.
//
// Each supported provider implements the Adapter interface: given an API
// key, it queries the provider's billing API and returns a normalized
// Snapshot. Different vendors expose completely different response shapes;
// adapters hide that behind one contract, selected at runtime through the
// Registry lookup table.
//
// # Error Semantics
//
// Adapters encode business outcomes in the snapshot:
//   - rejected credential: KeyValid=false, Err set, no Go error
//   - valid key without cost data: KeyValid=true, Amount=0
//
// A Go error is returned only for transport failures (connection refused,
// timeout, malformed body), which the sync orchestrator isolates per
// provider.
package provider
