// Package guard implements the single authorization decision point for the
// wallet core.
//
// The model is deliberately minimal and default-deny: an identity may act on
// a record iff it owns the record. There is no sharing, no delegation, and
// no role-based override; the Identity.Admin flag is informational and
// confers nothing here. Every store operation routes its ownership check
// through a Guard so the authorization logic stays in one auditable place.
package guard

import "log/slog"

// Guard decides whether an identity may act on a resource.
type Guard struct {
	logger *slog.Logger
}

// New creates a new Guard.
func New() *Guard {
	return &Guard{
		logger: slog.Default().With("component", "wallet.guard"),
	}
}

// Authorize reports whether identity may act on a resource owned by
// resourceOwner. True iff the two are the same non-empty principal.
//
// Callers must surface a denial as the same not-found signal used for
// nonexistent records; the denial is logged here with identities only,
// never with record contents.
func (g *Guard) Authorize(identity, resourceOwner string) bool {
	if identity == "" || resourceOwner == "" {
		return false
	}
	if identity != resourceOwner {
		g.logger.Debug("authorization denied",
			"identity", identity,
			"resource_owner", resourceOwner,
		)
		return false
	}
	return true
}
