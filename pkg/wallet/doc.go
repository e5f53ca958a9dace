// Package wallet defines the domain types and error contract for the
// encrypted API-key wallet core.
//
// The core is composed of four collaborating components:
//
//   - cipherbox: authenticated symmetric encryption of secret payloads
//     (AES-256-GCM behind a single process-wide key)
//   - store: SQLite-backed persistence for secrets, categories, and
//     identities, with every operation scoped to an owning identity
//   - guard: the single ownership-based authorization decision point
//   - keysource: startup resolution of the required encryption key from
//     environment variables or secret files
//
// Callers (an HTTP layer, a CLI) present an already-authenticated identity
// with each operation. The core never parses requests and never renders
// responses; it returns value objects or errors from this package.
//
// Error handling follows a strict leak-resistance rule: a resource that does
// not exist and a resource owned by someone else produce the identical
// ErrNotFound, so callers cannot probe for the existence of other users'
// records.
package wallet
