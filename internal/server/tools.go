package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func slotProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Name of the image slot",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "slot_configure",
			Description: "Read an image slot's settings from a section of a TOML config file, load its image and apply " +
				"crop, greyscale, color matrix tint, flip and rotation. The slot is created if it does not exist. " +
				"Work is skipped when neither the settings nor the image file changed since the last call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"slot": slotProperty(),
					"config": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the TOML config file",
					},
					"section": map[string]interface{}{
						"type":        "string",
						"description": "Config section to read. Defaults to the slot name",
					},
					"base_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory relative ImageName paths are resolved against. Defaults to the config file's directory",
					},
					"force": map[string]interface{}{
						"type":        "boolean",
						"description": "Reload the image even if the file is unchanged",
						"default":     false,
					},
				},
				"required": []string{"slot", "config"},
			},
		},
		{
			Name:        "slot_render",
			Description: "Return the slot's current image as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"slot": slotProperty(),
				},
				"required": []string{"slot"},
			},
		},
		{
			Name:        "slot_info",
			Description: "Describe a slot: image size, source metadata, parameters, pending changes and work counters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"slot": slotProperty(),
				},
				"required": []string{"slot"},
			},
		},
		{
			Name:        "slot_sample_color",
			Description: "Get the color of a pixel of the slot's current image in hex, RGB, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"slot": slotProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"slot", "x", "y"},
			},
		},
		{
			Name:        "slot_unload",
			Description: "Release a slot's images and forget the slot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"slot": slotProperty(),
				},
				"required": []string{"slot"},
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
