package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// protocolVersion is the MCP revision the server implements.
const protocolVersion = "2024-11-05"

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 1024 * 1024

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// methodHandler answers one JSON-RPC method. A nil response means the
// request was a notification.
type methodHandler func(req *MCPRequest) *MCPResponse

// Server exposes image-to-plot conversion over MCP.
type Server struct {
	log     *zap.Logger
	version string
	methods map[string]methodHandler
}

// New creates a server. A nil logger disables logging; version is reported
// in the initialize handshake.
func New(log *zap.Logger, version string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{log: log, version: version}
	s.methods = map[string]methodHandler{
		"initialize":                s.handleInitialize,
		"notifications/initialized": func(*MCPRequest) *MCPResponse { return nil },
		"tools/list":                s.handleToolsList,
		"tools/call":                s.handleToolsCall,
		"ping": func(req *MCPRequest) *MCPResponse {
			return resultResponse(req.ID, map[string]interface{}{})
		},
	}
	return s
}

// Run serves stdin to stdout until stdin closes.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited requests from r and writes one response line
// per request to w, in order. Blank lines are ignored; lines that are not
// JSON get a parse error with a null id.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := s.handleLine(line)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// handleLine decodes one request line and dispatches it.
func (s *Server) handleLine(line []byte) *MCPResponse {
	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("failed to parse request", zap.Error(err))
		return errorResponse(nil, codeParseError, "Parse error", err.Error())
	}
	s.log.Debug("request", zap.String("method", req.Method), zap.Any("id", req.ID))
	return s.handleRequest(&req)
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	handler, ok := s.methods[req.Method]
	if !ok {
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
	return handler(req)
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return resultResponse(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "image-to-plot",
			"version": s.version,
		},
	})
}

func resultResponse(id, result interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: "2.0", ID: id, Result: result}
}

// errorResponse builds a JSON-RPC error; an empty data is omitted.
func errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
