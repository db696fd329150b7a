package webapp

import "net"

// AppContext names the two isolated application contexts a request can
// land in.
type AppContext int

const (
	ContextPublic AppContext = iota
	ContextAdmin
)

func (c AppContext) String() string {
	if c == ContextAdmin {
		return "admin"
	}
	return "public"
}

// ResolveContext selects the application context for a request host.
// Exact match on the configured admin hostname picks the exec console;
// every other hostname falls back to the public app. Both serving
// strategies (built assets and dev proxies) consume this identically.
func ResolveContext(host, adminHostname string) AppContext {
	if hostname(host) == adminHostname {
		return ContextAdmin
	}
	return ContextPublic
}

func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
