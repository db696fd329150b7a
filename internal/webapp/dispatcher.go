package webapp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graciegould/snaglet/internal/config"
)

// Dispatcher routes non-API requests to the app context their
// hostname selects. It runs before any static or SPA fallback logic
// and is independent of the /api route table, which both hostnames
// share.
type Dispatcher struct {
	adminHostname string
	public        http.Handler
	admin         http.Handler
}

func NewDispatcher(cfg config.Config) *Dispatcher {
	var public, admin http.Handler

	if cfg.IsProduction() {
		public = newSPAHandler(cfg.PublicAssetsDir)
		admin = newSPAHandler(cfg.AdminAssetsDir)
	} else {
		public = newDevProxy(cfg.PublicDevPort)
		admin = newDevProxy(cfg.AdminDevPort)
	}

	return &Dispatcher{
		adminHostname: cfg.AdminHostname,
		public:        public,
		admin:         admin,
	}
}

// Handle is installed as the router's NoRoute handler, so every path
// the API table does not claim lands here.
func (d *Dispatcher) Handle(c *gin.Context) {
	switch ResolveContext(c.Request.Host, d.adminHostname) {
	case ContextAdmin:
		d.admin.ServeHTTP(c.Writer, c.Request)
	default:
		d.public.ServeHTTP(c.Writer, c.Request)
	}
}
