package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/ironsheep/utility-tools-mcp/internal/diag"
)

// Entry is one captured console message or uncaught page exception.
type Entry struct {
	// Type is the console API level ("log", "info", "warning", "error",
	// "debug", ...) or "exception" for uncaught errors.
	Type string `json:"type"`

	// Text is the rendered message.
	Text string `json:"text"`
}

// CaptureOptions tunes a single capture run.
type CaptureOptions struct {
	// Timeout is how long to keep listening after navigation starts, so
	// late async output is still collected. Zero means 5 seconds.
	Timeout time.Duration

	// InjectScript is JavaScript injected ahead of the page's own scripts.
	// Only honored for local files, which are served through the
	// injecting FileServer.
	InjectScript string

	// BrowserPath overrides the Chrome executable chromedp would probe
	// for.
	BrowserPath string
}

// CaptureConsole loads target in a headless browser and returns everything
// the page wrote to the console, plus uncaught exceptions, in arrival
// order. target is either an http(s) URL or a local file path; local files
// are served over loopback HTTP for the duration of the call.
func CaptureConsole(ctx context.Context, target string, opts CaptureOptions, sink diag.Sink) ([]Entry, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	navURL := target
	if !isRemoteURL(target) {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %s: %w", target, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", abs, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%s is not a regular file", abs)
		}

		fs := NewFileServer(filepath.Dir(abs), opts.InjectScript, sink)
		if err := fs.Start(); err != nil {
			return nil, err
		}
		defer fs.Close()
		navURL = fs.URL(filepath.Base(abs))
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if opts.BrowserPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.BrowserPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var mu sync.Mutex
	var entries []Entry
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			parts := make([]string, 0, len(e.Args))
			for _, arg := range e.Args {
				parts = append(parts, formatRemoteObject(arg))
			}
			mu.Lock()
			entries = append(entries, Entry{
				Type: string(e.Type),
				Text: strings.Join(parts, " "),
			})
			mu.Unlock()
		case *runtime.EventExceptionThrown:
			mu.Lock()
			entries = append(entries, Entry{
				Type: "exception",
				Text: e.ExceptionDetails.Error(),
			})
			mu.Unlock()
		}
	})

	err := chromedp.Run(tabCtx,
		runtime.Enable(),
		chromedp.Navigate(navURL),
		chromedp.Sleep(opts.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("browser navigation failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return entries, nil
}

// isRemoteURL reports whether target should be navigated to directly
// instead of being served from disk.
func isRemoteURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// formatRemoteObject renders a console argument roughly the way devtools
// would: primitive values verbatim, objects as JSON, everything else by
// its description.
func formatRemoteObject(o *runtime.RemoteObject) string {
	if o == nil {
		return ""
	}
	if len(o.Value) > 0 {
		var v interface{}
		if err := json.Unmarshal(o.Value, &v); err == nil {
			if s, ok := v.(string); ok {
				return s
			}
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
		return string(o.Value)
	}
	if o.UnserializableValue != "" {
		return string(o.UnserializableValue)
	}
	if o.Description != "" {
		return o.Description
	}
	return string(o.Type)
}
