package browser

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/utility-tools-mcp/internal/diag"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func startServer(t *testing.T, dir, inject string) *FileServer {
	t.Helper()
	fs := NewFileServer(dir, inject, &diag.CaptureSink{})
	if err := fs.Start(); err != nil {
		t.Fatalf("failed to start file server: %v", err)
	}
	t.Cleanup(func() { fs.Close() })
	return fs
}

func fetch(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestFileServer_ServesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", []byte("<html><head></head><body>hi</body></html>"))

	fs := startServer(t, dir, "")
	status, body := fetch(t, fs.URL("page.html"))

	if status != http.StatusOK {
		t.Fatalf("status: got %d, want 200", status)
	}
	if !strings.Contains(string(body), "hi") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFileServer_InjectsIntoHTML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", []byte("<html><head><title>t</title></head><body></body></html>"))

	fs := startServer(t, dir, "console.log('probe')")
	_, body := fetch(t, fs.URL("page.html"))

	doc := string(body)
	if !strings.Contains(doc, "<script>console.log('probe')</script>") {
		t.Fatalf("script not injected: %q", doc)
	}
	// Injection goes ahead of the page's own head content.
	if strings.Index(doc, "console.log('probe')") > strings.Index(doc, "<title>") {
		t.Errorf("script should precede existing head content: %q", doc)
	}
}

func TestFileServer_NoInjectionForOtherFiles(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	writeFile(t, dir, "pixel.png", payload)

	fs := startServer(t, dir, "console.log('probe')")
	status, body := fetch(t, fs.URL("pixel.png"))

	if status != http.StatusOK {
		t.Fatalf("status: got %d, want 200", status)
	}
	if len(body) != len(payload) {
		t.Fatalf("non-HTML files must pass through unchanged: %d vs %d bytes", len(body), len(payload))
	}
	for i := range payload {
		if body[i] != payload[i] {
			t.Fatalf("byte %d differs", i)
		}
	}
}

func TestFileServer_IndexDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", []byte("<html><body>root</body></html>"))

	fs := startServer(t, dir, "")
	status, body := fetch(t, fs.URL(""))

	if status != http.StatusOK {
		t.Fatalf("status: got %d, want 200", status)
	}
	if !strings.Contains(string(body), "root") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFileServer_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	fs := startServer(t, dir, "")

	status, _ := fetch(t, fs.URL("..%2Fsecret.txt"))
	if status == http.StatusOK {
		t.Errorf("traversal should not succeed, got %d", status)
	}
}

func TestFileServer_MissingFile(t *testing.T) {
	dir := t.TempDir()
	fs := startServer(t, dir, "inject")

	status, _ := fetch(t, fs.URL("ghost.html"))
	if status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", status)
	}
}

func TestInjectScript(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"with head",
			"<html><head><meta></head></html>",
			"<html><head><script>x()</script><meta></head></html>",
		},
		{
			"uppercase head",
			"<HTML><HEAD></HEAD></HTML>",
			"<HTML><HEAD><script>x()</script></HEAD></HTML>",
		},
		{
			"no head",
			"<p>bare</p>",
			"<script>x()</script><p>bare</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(injectScript([]byte(tt.doc), "x()"))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
