package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var locationSchema = map[string]interface{}{
	"type":        "object",
	"description": "World location of grid cell (0, 0). Cell (x, z) lands at origin + (x, 0, z). Default (0, 0, 0)",
	"properties": map[string]interface{}{
		"x": map[string]interface{}{"type": "integer"},
		"y": map[string]interface{}{"type": "integer"},
		"z": map[string]interface{}{"type": "integer"},
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Building
		{
			Name:        "buildimage",
			Description: "Fetch an image from a URL, scale it so its longer edge is at most max_edge, and map every pixel to the closest palette label. The label grid is placed at the origin and returned with per-label counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "Image URL (http, https, or file when enabled)",
					},
					"origin": locationSchema,
					"max_edge": map[string]interface{}{
						"type":        "integer",
						"description": "Override the configured max edge. Default is the server setting",
						"minimum":     1,
					},
					"include_rows": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the full label grid as rows[z][x]. Default true",
						"default":     true,
					},
					"preview_scale": map[string]interface{}{
						"type":        "integer",
						"description": "When set, also return a PNG preview of the grid upscaled by this factor (1-16)",
						"minimum":     1,
						"maximum":     16,
					},
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "image_target_dimensions",
			Description: "Compute the grid dimensions an image of the given size would be scaled to.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Source width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Source height in pixels",
					},
					"max_edge": map[string]interface{}{
						"type":        "integer",
						"description": "Max edge. Default is the server setting",
					},
				},
				"required": []string{"width", "height"},
			},
		},

		{
			Name:        "image_dominant_colors",
			Description: "Fetch an image and report its dominant colors, each with the palette label it would build as. Nothing is placed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "Image URL",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (1-16). Default 5",
						"default":     5,
					},
				},
				"required": []string{"url"},
			},
		},

		// Palette
		{
			Name:        "palette_list",
			Description: "List the current palette entries in match order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "palette_match",
			Description: "Find the palette label closest to a color, with its weighted RGB distance and CIEDE2000 delta E.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Color as 6 hex digits, e.g. \"FF8040\" or \"#ff8040\"",
					},
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "palette_reload",
			Description: "Re-read the config file and replace the palette. Builds already running keep the palette they started with.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
