package provider

import (
	"context"

	"github.com/graciegould/snaglet/internal/auth"
)

// IdentityProvider defines the contract with the external identity
// provider. Implementations return identity facts and mutate the
// provider's claim store; they make no authorization decisions and
// keep no local state (no caching, no retries — every call may fail
// outright and callers must treat it that way).
type IdentityProvider interface {
	// VerifyToken resolves a bearer token to a verified identity.
	// Returns auth.ErrInvalidCredential when the token itself is bad
	// and auth.ErrProviderUnavailable when the provider could not be
	// reached.
	VerifyToken(ctx context.Context, rawToken string) (*auth.Identity, error)

	// LookupByEmail finds the account registered under the given
	// email. Returns auth.ErrTargetNotFound when no such account
	// exists.
	LookupByEmail(ctx context.Context, email string) (*auth.Identity, error)

	// SetClaims merges the given claims into the account's claim set
	// at the provider. Idempotent. The change reaches the holder only
	// in tokens issued after their next sign-in; implementations must
	// never attempt to invalidate tokens already in flight.
	SetClaims(ctx context.Context, subjectID string, claims map[string]any) error
}
