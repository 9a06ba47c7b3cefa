package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/utility-tools-mcp/internal/browser"
	"github.com/ironsheep/utility-tools-mcp/internal/scan"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "scan_images").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<result text>"}]
//	}
//
// Tool execution errors never escape to the transport: they are logged to
// the diagnostic sink and returned as JSON-RPC error responses with code
// -32000, with the failure description embedded.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	text, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.sink.Event("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the scan or browser pipeline
//  4. Renders the result as response text
func (s *Server) executeTool(name string, args json.RawMessage) (string, error) {
	switch name {
	// Image Scanning
	case "scan_images":
		return s.handleScanImages(args)
	case "list_images":
		return s.handleListImages(args)
	case "image_info":
		return s.handleImageInfo(args)

	// Browser Console Capture
	case "capture_console_logs":
		return s.handleCaptureConsoleLogs(args)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// resolveDirectory applies the default (current working directory) and
// resolves the result to an absolute path.
func resolveDirectory(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// === Image Scanning Handlers ===

type scanImagesArgs struct {
	Directory string `json:"directory"`
	Recursive bool   `json:"recursive"`
}

func (s *Server) handleScanImages(args json.RawMessage) (string, error) {
	var a scanImagesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	dir, err := resolveDirectory(a.Directory)
	if err != nil {
		return "", err
	}

	records, err := s.walker.Walk(dir, a.Recursive)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("No image files found in %s", dir), nil
	}
	return scan.Summarize(records, dir, a.Recursive), nil
}

type listImagesArgs struct {
	Directory    string `json:"directory"`
	Recursive    bool   `json:"recursive"`
	WithMetadata bool   `json:"with_metadata"`
}

func (s *Server) handleListImages(args json.RawMessage) (string, error) {
	var a listImagesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	dir, err := resolveDirectory(a.Directory)
	if err != nil {
		return "", err
	}

	records, err := s.walker.Walk(dir, a.Recursive)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("No image files found in %s", dir), nil
	}

	payload, err := json.MarshalIndent(scan.Serialize(records, a.WithMetadata), "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (string, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Path == "" {
		return "", fmt.Errorf("path is required")
	}
	abs, err := filepath.Abs(a.Path)
	if err != nil {
		return "", err
	}

	rec, ok := s.extractor.Extract(abs)
	if !ok {
		return "", fmt.Errorf("%s is not a readable image file", abs)
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// === Browser Console Capture Handlers ===

type captureConsoleLogsArgs struct {
	URL          string `json:"url"`
	TimeoutMS    int    `json:"timeout_ms"`
	InjectScript string `json:"inject_script"`
}

func (s *Server) handleCaptureConsoleLogs(args json.RawMessage) (string, error) {
	var a captureConsoleLogsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.URL == "" {
		return "", fmt.Errorf("url is required")
	}
	if a.TimeoutMS <= 0 {
		a.TimeoutMS = 5000
	}

	entries, err := browser.CaptureConsole(context.Background(), a.URL, browser.CaptureOptions{
		Timeout:      time.Duration(a.TimeoutMS) * time.Millisecond,
		InjectScript: a.InjectScript,
		BrowserPath:  s.browserPath,
	}, s.sink)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "No console output captured.", nil
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
