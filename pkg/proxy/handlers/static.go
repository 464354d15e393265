package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"lumen-hq/hermes/pkg/proxy"
	"lumen-hq/hermes/pkg/proxy/types"
)

// StaticHandler serves the static frontend from a directory and doubles as
// the catch-all route: anything that is not an existing file (including
// unmatched /api/ paths) gets the uniform 404 JSON envelope rather than the
// default plain-text not-found page.
type StaticHandler struct {
	root string
}

// NewStaticHandler creates a static handler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: dir}
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
		return
	}

	// API routes never fall through to file serving
	if strings.HasPrefix(r.URL.Path, "/api/") {
		proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
		return
	}

	// Clean with a leading slash so ".." cannot escape the root
	name := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		index := filepath.Join(name, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
		proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
		return
	}

	if err != nil {
		proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
		return
	}

	http.ServeFile(w, r, name)
}
