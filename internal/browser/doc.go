// Package browser implements headless-browser console-log capture.
//
// CaptureConsole drives a headless Chrome instance (via chromedp) to a
// target page and records everything the page writes through the console
// API, plus uncaught exceptions. Remote http(s) URLs are navigated
// directly; local file paths are served through an ephemeral loopback
// FileServer so the page loads under an http origin, which keeps
// same-origin script behavior intact and allows HTML injection.
//
// # HTML Injection
//
// The FileServer can inject a caller-supplied script into documents served
// with an .html/.htm extension, ahead of the page's own scripts. Every
// other file is passed through byte-for-byte. This is how the capture tool
// runs instrumentation code before the page executes.
//
// # Requirements
//
// A Chrome or Chromium binary must be reachable; chromedp probes the usual
// install locations, and CaptureOptions.BrowserPath overrides the probe.
package browser
