package auth

// AdminClaim is the provider-side custom claim that grants access to
// privileged endpoints. Its presence with a boolean true value is the
// sole privilege signal; no other identity attribute matters.
const AdminClaim = "isAdmin"

// Identity is the verified identity attached to a request after its
// bearer credential has been checked against the identity provider.
// It contains facts only, no decisions, and is immutable once
// attached: claim changes made at the provider show up only in tokens
// issued after the change.
type Identity struct {
	SubjectID string         // provider-scoped stable user identifier (sub)
	Email     string         // email asserted by the provider, may be empty
	Claims    map[string]any // custom claims stored at the provider
}

// HasClaim reports whether the named claim is present and is the
// boolean value true. Any other type or value does not count.
func (id *Identity) HasClaim(name string) bool {
	v, ok := id.Claims[name]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
