// Package keysource resolves deployment secrets — above all the wallet's
// required encryption key — from pluggable backends.
//
// Providers are tried in priority order: typically a file provider for
// mounted secrets first, then environment variables as fallback. The
// encryption key is resolved exactly once at startup; a failure there is
// fatal because the wallet cannot handle secrets without it.
package keysource

import "context"

// DefaultKeyName is the secret name under which the wallet's encryption key
// is resolved.
const DefaultKeyName = "encryption-key"

// Provider retrieves named secrets from a backend.
type Provider interface {
	// GetSecret retrieves a secret by name. Returns an error if the secret
	// is not found or cannot be read.
	GetSecret(ctx context.Context, name string) (string, error)

	// Provider returns the provider name ("env", "file").
	Provider() string

	// Supports indicates whether this provider can plausibly serve the
	// given secret name, used to pick a provider when several are chained.
	Supports(name string) bool
}

// RefreshableProvider can reload its secrets without a restart. The
// encryption key itself is immutable for the process lifetime; refresh
// serves the other deployment secrets a provider may hold.
type RefreshableProvider interface {
	Provider

	// Refresh discards cached values so subsequent reads hit the backend.
	Refresh(ctx context.Context) error
}
