package handlers

import (
	"net/http"
	"path"

	"smartnotes/pkg/logger"

	"github.com/spf13/afero"
)

// StaticHandler serves the bundled frontend files verbatim.
type StaticHandler struct {
	FS afero.Fs
}

// NewStaticHandler roots fs at dir, so only files below it are reachable.
func NewStaticHandler(fs afero.Fs, dir string) *StaticHandler {
	return &StaticHandler{FS: afero.NewBasePathFs(fs, dir)}
}

func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "index.html", "text/html; charset=utf-8")
}

func (h *StaticHandler) Favicon(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "favicon.svg", "image/svg+xml")
}

func (h *StaticHandler) serve(w http.ResponseWriter, name, contentType string) {
	data, err := afero.ReadFile(h.FS, path.Join("/", name))
	if err != nil {
		logger.Sugar.Errorf("Failed to read static asset %s: %v", name, err)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
