package browser

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/utility-tools-mcp/internal/diag"
)

// FileServer serves a single directory over loopback HTTP so a headless
// browser can load local pages under an http origin. Documents with an
// .html/.htm extension optionally get a script injected into them before
// serving; everything else is passed through unchanged.
type FileServer struct {
	root   string
	inject string
	sink   diag.Sink

	ln  net.Listener
	srv *http.Server
}

// NewFileServer creates a server rooted at dir. injectScript, when
// non-empty, is the JavaScript source placed ahead of each served HTML
// document's own scripts.
func NewFileServer(dir, injectScript string, sink diag.Sink) *FileServer {
	return &FileServer{root: dir, inject: injectScript, sink: sink}
}

// Start binds the server to an ephemeral loopback port and begins serving
// in the background. Callers must Close the server when done.
func (fs *FileServer) Start() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.NoRoute(fs.serveFile)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to bind file server: %w", err)
	}
	fs.ln = ln
	fs.srv = &http.Server{Handler: engine}

	go func() {
		if err := fs.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fs.sink.Event("browser: file server stopped: %v", err)
		}
	}()
	return nil
}

// URL returns the loopback URL for a file name relative to the served
// directory. Only valid after Start.
func (fs *FileServer) URL(name string) string {
	return fmt.Sprintf("http://%s/%s", fs.ln.Addr().String(), name)
}

// Close shuts the server down immediately.
func (fs *FileServer) Close() error {
	if fs.srv == nil {
		return nil
	}
	return fs.srv.Close()
}

func (fs *FileServer) serveFile(c *gin.Context) {
	name := strings.TrimPrefix(c.Request.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		c.String(http.StatusForbidden, "forbidden")
		return
	}
	full := filepath.Join(fs.root, clean)

	ext := strings.ToLower(filepath.Ext(full))
	if fs.inject != "" && (ext == ".html" || ext == ".htm") {
		doc, err := os.ReadFile(full)
		if err != nil {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", injectScript(doc, fs.inject))
		return
	}
	c.File(full)
}

// injectScript places a <script> element ahead of the document's own
// scripts: directly after <head> when present, prepended otherwise.
func injectScript(doc []byte, script string) []byte {
	tag := []byte("<script>" + script + "</script>")

	lower := bytes.ToLower(doc)
	if i := bytes.Index(lower, []byte("<head>")); i >= 0 {
		i += len("<head>")
		out := make([]byte, 0, len(doc)+len(tag))
		out = append(out, doc[:i]...)
		out = append(out, tag...)
		out = append(out, doc[i:]...)
		return out
	}
	return append(tag, doc...)
}
