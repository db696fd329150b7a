package webapp

import (
	"net/http"
	"os"
	"path/filepath"
)

// spaHandler serves one built single-page app: the asset when the path
// names a real file, otherwise the entry document so client-side
// routing can take over.
type spaHandler struct {
	root string
}

func newSPAHandler(root string) http.Handler {
	return &spaHandler{root: root}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	// SPA fallback
	http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
}
