package webapp

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/graciegould/snaglet/internal/logger"
)

// newDevProxy forwards a context's asset traffic to its live-reload
// bundler on an internal port. One proxy per context, created once at
// startup; the bundler's state is never touched here beyond
// delegation.
func newDevProxy(port string) http.Handler {
	target := &url.URL{
		Scheme: "http",
		Host:   "127.0.0.1:" + port,
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("dev bundler unreachable", map[string]any{
			"target": target.Host,
			"path":   r.URL.Path,
			"error":  err.Error(),
		})
		http.Error(w, "dev server unavailable", http.StatusBadGateway)
	}

	return proxy
}
