// Package credentials manages the stored API keys used to query provider
// billing APIs.
//
// Credentials are the sole input of the sync engine: one credential per
// provider, upserted by the user, soft-disabled via the is_active flag.
// The engine caches last_checked / last_usage_amount on the credential
// after every sync attempt but never deletes a credential itself.
//
// Listing endpoints always mask the stored secret.
package credentials
