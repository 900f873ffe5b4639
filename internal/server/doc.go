// Package server implements an MCP (Model Context Protocol) server that
// exposes image-to-plot conversion as tools.
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
// Requests are handled sequentially. No state is kept between calls; each
// tool call decodes its image afresh.
//
// # Available Tools
//
// Image discovery:
//   - image_info: Format, dimensions and file size
//   - image_find_latest: Newest image in a folder
//
// Plot generation:
//   - image_sample: Edge points (sketch) or per-pixel colors (color)
//   - image_to_script: Standalone matplotlib script, returned or written
//   - image_preview: PNG approximation of the script's output
//
// Icons:
//   - icon_convert: Image to square PNG/ICO icon, or ICO to PNG
//
// When max_size is omitted the mode default applies: 160 for sketch, 80 for
// color.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(logger, version)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
