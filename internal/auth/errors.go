package auth

import "errors"

// Failure kinds crossing the authorization boundary. Handlers and
// middleware convert every internal error into one of these before it
// reaches the HTTP layer.
var (
	// ErrMissingCredential: no Authorization header, or one that does
	// not match "Bearer <token>". The provider is never called.
	ErrMissingCredential = errors.New("missing bearer credential")

	// ErrInvalidCredential: a token was presented but failed provider
	// verification (expired, tampered, revoked, wrong audience).
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrProviderUnavailable: the provider call itself failed for
	// reasons unrelated to the token (network, quota). Surfaced to the
	// caller exactly like an invalid credential, but logged apart.
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	// ErrInsufficientPrivilege: authenticated but missing the
	// required claim.
	ErrInsufficientPrivilege = errors.New("insufficient privilege")

	// ErrTargetNotFound: a privileged action referenced an email that
	// resolves to no account at the provider.
	ErrTargetNotFound = errors.New("target identity not found")
)
