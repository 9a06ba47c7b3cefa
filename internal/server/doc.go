// Package server implements the MCP (Model Context Protocol) server for the
// utility tools.
//
// This package provides a JSON-RPC 2.0 server that exposes directory image
// scanning and headless-browser console capture through the MCP protocol.
// It's designed to work with Claude and other MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Scanning:
//   - scan_images: Human-readable directory scan summary
//   - list_images: Structured records or bare paths
//   - image_info: Metadata for a single image file
//
// Browser Console Capture:
//   - capture_console_logs: Console output and exceptions from a page
//     loaded in headless Chrome
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A tool invocation never crashes the server or leaks an error past the
// transport framing; every call produces a well-formed response.
// Diagnostic detail goes to the injected sink (stderr in production),
// never to stdout, which carries protocol payloads only.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(nil)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
