package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

var (
	modeProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"sketch", "color"},
		"description": "Sampling mode: sketch (edge points) or color (every pixel). Default sketch",
		"default":     "sketch",
	}
	maxSizeProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum side of the resized image in pixels. Default 160 for sketch, 80 for color",
		"minimum":     1,
	}
	filterProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"nearest", "box", "linear", "catmullrom", "lanczos"},
		"description": "Resampling filter used when shrinking. Default catmullrom",
		"default":     "catmullrom",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image discovery
		{
			Name:        "image_info",
			Description: "Decode an image file and return its format, dimensions and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_find_latest",
			Description: "Find the most recently modified image (png, jpg, jpeg, webp, bmp, gif, tif, tiff, svg) in a folder.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Folder to search. Default is the server's working directory",
						"default":     ".",
					},
				},
			},
		},

		// Plot generation
		{
			Name:        "image_sample",
			Description: "Sample an image into plot points: edge points in sketch mode, or every pixel with its color in color mode.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty("Absolute path to the image file"),
					"mode":     modeProperty,
					"max_size": maxSizeProperty,
					"filter":   filterProperty,
					"include_points": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the sampled points, not just their count. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_to_script",
			Description: "Generate a standalone Python matplotlib script that redraws the image. Returns the script text, or writes it when out or save is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty("Absolute path to the image file"),
					"mode":     modeProperty,
					"max_size": maxSizeProperty,
					"filter":   filterProperty,
					"out":      pathProperty("Optional path for the generated .py file"),
					"save": map[string]interface{}{
						"type":        "boolean",
						"description": "Write <image name>.py next to the image when out is not given. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Render a PNG preview of what the generated script will draw.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty("Absolute path to the image file"),
					"mode":     modeProperty,
					"max_size": maxSizeProperty,
					"filter":   filterProperty,
					"out":      pathProperty("Path for the preview PNG"),
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Preview pixels per sampled pixel (1-16). Default 4",
						"minimum":     1,
						"maximum":     16,
						"default":     4,
					},
				},
				"required": []string{"path", "out"},
			},
		},

		// Icons
		{
			Name:        "icon_convert",
			Description: "Convert an image into a square PNG or ICO icon, or an ICO file into PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the source image or .ico file"),
					"out":  pathProperty("Destination .png or .ico. Default is derived from the source name"),
					"direction": map[string]interface{}{
						"type":        "string",
						"enum":        []string{directionImageToIcon, directionIconToPNG},
						"description": "Conversion direction. Default image_to_icon",
						"default":     directionImageToIcon,
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Icon side in pixels (16-512, at most 256 for .ico). Default 256",
						"minimum":     16,
						"maximum":     512,
						"default":     256,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return resultResponse(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
