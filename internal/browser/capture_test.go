package browser

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/cdproto/runtime"

	"github.com/ironsheep/utility-tools-mcp/internal/diag"
)

func TestIsRemoteURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"http://example.com", true},
		{"https://example.com/page", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"/tmp/page.html", false},
		{"page.html", false},
		{"file:///tmp/page.html", false},
	}

	for _, tt := range tests {
		if got := isRemoteURL(tt.target); got != tt.want {
			t.Errorf("isRemoteURL(%q): got %v, want %v", tt.target, got, tt.want)
		}
	}
}

// remoteObject builds a RemoteObject from its wire JSON.
func remoteObject(t *testing.T, raw string) *runtime.RemoteObject {
	t.Helper()
	var o runtime.RemoteObject
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("failed to unmarshal remote object: %v", err)
	}
	return &o
}

func TestFormatRemoteObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string value", `{"type":"string","value":"hello world"}`, "hello world"},
		{"number value", `{"type":"number","value":42}`, "42"},
		{"boolean value", `{"type":"boolean","value":true}`, "true"},
		{"object value", `{"type":"object","value":{"a":1}}`, `{"a":1}`},
		{"description fallback", `{"type":"object","subtype":"error","description":"Error: boom"}`, "Error: boom"},
		{"unserializable", `{"type":"number","unserializableValue":"NaN"}`, "NaN"},
		{"bare type", `{"type":"undefined"}`, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRemoteObject(remoteObject(t, tt.raw)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRemoteObject_Nil(t *testing.T) {
	if got := formatRemoteObject(nil); got != "" {
		t.Errorf("nil object should render empty, got %q", got)
	}
}

func TestCaptureConsole_MissingLocalFile(t *testing.T) {
	_, err := CaptureConsole(context.Background(), "/nonexistent/page.html", CaptureOptions{}, &diag.CaptureSink{})
	if err == nil {
		t.Fatal("a missing local file must fail before the browser starts")
	}
}

func TestCaptureConsole_DirectoryTarget(t *testing.T) {
	_, err := CaptureConsole(context.Background(), t.TempDir(), CaptureOptions{}, &diag.CaptureSink{})
	if err == nil {
		t.Fatal("a directory target must be rejected")
	}
}

// findBrowser locates a usable Chrome/Chromium binary, or returns "".
func findBrowser() string {
	if path := os.Getenv("UTILITY_MCP_BROWSER_PATH"); path != "" {
		return path
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func TestCaptureConsole_LocalPage(t *testing.T) {
	browserPath := findBrowser()
	if browserPath == "" {
		t.Skip("no Chrome/Chromium available")
	}

	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", []byte(
		`<html><head><script>console.log("hello", 42);console.warn("careful");</script></head><body></body></html>`))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	entries, err := CaptureConsole(ctx, page, CaptureOptions{
		Timeout:     2 * time.Second,
		BrowserPath: browserPath,
	}, &diag.CaptureSink{})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected at least 2 entries, got %v", entries)
	}

	var sawLog, sawWarn bool
	for _, e := range entries {
		if e.Type == "log" && e.Text == "hello 42" {
			sawLog = true
		}
		if e.Type == "warning" && e.Text == "careful" {
			sawWarn = true
		}
	}
	if !sawLog || !sawWarn {
		t.Errorf("missing expected entries: %v", entries)
	}
}

func TestCaptureConsole_InjectedScriptRunsFirst(t *testing.T) {
	browserPath := findBrowser()
	if browserPath == "" {
		t.Skip("no Chrome/Chromium available")
	}

	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", []byte(
		`<html><head><script>console.log("page");</script></head><body></body></html>`))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	entries, err := CaptureConsole(ctx, page, CaptureOptions{
		Timeout:      2 * time.Second,
		InjectScript: `console.log("injected");`,
		BrowserPath:  browserPath,
	}, &diag.CaptureSink{})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	var order []string
	for _, e := range entries {
		if e.Type == "log" {
			order = append(order, e.Text)
		}
	}
	if len(order) != 2 || order[0] != "injected" || order[1] != "page" {
		t.Errorf("injected script should log before the page: %v", order)
	}
}
