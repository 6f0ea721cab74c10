// Package errs defines the error shapes the dashboard hands to its callers.
//
// Two families live here:
//   - FetchError: the typed failure every data-access operation returns.
//     It names the failed operation and hides the store's own error.
//   - HTTPError: the JSON error body the HTTP API writes, built from
//     FetchError, validation failures or unknown errors.
package errs
