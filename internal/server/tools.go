package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Scanning
		{
			Name:        "scan_images",
			Description: "Scan a directory for image files and return a human-readable summary: file count, total size, and per-file dimensions, size, and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to scan. Defaults to the current working directory.",
					},
					"recursive": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to descend into subdirectories. Default false.",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "list_images",
			Description: "Scan a directory for image files and return structured data: full metadata records or bare file paths.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to scan. Defaults to the current working directory.",
					},
					"recursive": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to descend into subdirectories. Default false.",
						"default":     false,
					},
					"with_metadata": map[string]interface{}{
						"type":        "boolean",
						"description": "Return full records (path, width, height, type, size) instead of bare paths. Default false.",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "image_info",
			Description: "Return metadata for a single image file: size always, plus width/height/format when the header can be parsed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Browser Console Capture
		{
			Name:        "capture_console_logs",
			Description: "Load a page in a headless browser and capture its console output and uncaught exceptions. Accepts an http(s) URL or a local HTML file path; local files are served over loopback HTTP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "Page to load: an http(s) URL or a local file path",
					},
					"timeout_ms": map[string]interface{}{
						"type":        "integer",
						"description": "How long to keep collecting output after navigation, in milliseconds (default 5000)",
						"default":     5000,
					},
					"inject_script": map[string]interface{}{
						"type":        "string",
						"description": "Optional JavaScript injected ahead of the page's own scripts. Local files only.",
					},
				},
				"required": []string{"url"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
