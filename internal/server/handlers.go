package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/image-to-plot/internal/convert"
	"github.com/ironsheep/image-to-plot/internal/imaging"
	"github.com/ironsheep/image-to-plot/internal/sampler"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_sample", "image_to_script").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the imaging, sampler or convert package
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image discovery
	case "image_info":
		return s.handleImageInfo(args)
	case "image_find_latest":
		return s.handleImageFindLatest(args)

	// Plot generation
	case "image_sample":
		return s.handleImageSample(args)
	case "image_to_script":
		return s.handleImageToScript(args)
	case "image_preview":
		return s.handleImagePreview(args)

	// Icons
	case "icon_convert":
		return s.handleIconConvert(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// parseMode treats an empty mode as sketch.
func parseMode(s string) (sampler.Mode, error) {
	if strings.TrimSpace(s) == "" {
		return sampler.ModeSketch, nil
	}
	return sampler.ParseMode(s)
}

// === Image Discovery Handlers ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, info, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return info, nil
}

type imageFindLatestArgs struct {
	Dir string `json:"dir"`
}

type findLatestResult struct {
	Path string `json:"path"`
}

func (s *Server) handleImageFindLatest(args json.RawMessage) (interface{}, error) {
	var a imageFindLatestArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		a.Dir = "."
	}
	path, err := imaging.FindLatest(a.Dir)
	if err != nil {
		return nil, err
	}
	return &findLatestResult{Path: path}, nil
}

// === Plot Generation Handlers ===

type imageSampleArgs struct {
	Path          string `json:"path"`
	Mode          string `json:"mode"`
	MaxSize       int    `json:"max_size"`
	Filter        string `json:"filter"`
	IncludePoints bool   `json:"include_points"`
}

type sampleResult struct {
	Mode       sampler.Mode    `json:"mode"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	PointCount int             `json:"point_count"`
	Average    string          `json:"average_color,omitempty"`
	Points     []sampler.Point `json:"points,omitempty"`
	Pixels     []sampler.Pixel `json:"pixels,omitempty"`
}

func (s *Server) handleImageSample(args json.RawMessage) (interface{}, error) {
	var a imageSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := parseMode(a.Mode)
	if err != nil {
		return nil, err
	}
	if a.MaxSize == 0 {
		a.MaxSize = sampler.DefaultMaxSize(mode)
	}
	filter, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}

	res, err := sampler.Sample(mode, a.Path, a.MaxSize, sampler.WithFilter(filter))
	if err != nil {
		return nil, err
	}

	out := &sampleResult{
		Mode:       res.Mode,
		Width:      res.Width,
		Height:     res.Height,
		PointCount: res.Len(),
	}
	if mode == sampler.ModeColor {
		out.Average = sampler.AverageColor(res.Pixels).Hex()
	}
	if a.IncludePoints {
		out.Points = res.Points
		out.Pixels = res.Pixels
	}
	return out, nil
}

type imageToScriptArgs struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	MaxSize int    `json:"max_size"`
	Filter  string `json:"filter"`
	Out     string `json:"out"`
	Save    bool   `json:"save"`
}

type scriptResult struct {
	Mode       sampler.Mode `json:"mode"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	PointCount int          `json:"point_count"`
	OutPath    string       `json:"out_path,omitempty"`
	Script     string       `json:"script,omitempty"`
}

func (s *Server) handleImageToScript(args json.RawMessage) (interface{}, error) {
	var a imageToScriptArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := parseMode(a.Mode)
	if err != nil {
		return nil, err
	}
	if a.Save && a.Out == "" {
		a.Out = filepath.Join(filepath.Dir(a.Path), convert.DefaultScriptName(a.Path))
	}

	outcome, err := convert.Run(s.log, convert.Request{
		Mode:      mode,
		ImagePath: a.Path,
		MaxSize:   a.MaxSize,
		Filter:    a.Filter,
		Out:       a.Out,
	})
	if err != nil {
		return nil, err
	}

	res := &scriptResult{
		Mode:       outcome.Result.Mode,
		Width:      outcome.Result.Width,
		Height:     outcome.Result.Height,
		PointCount: outcome.Result.Len(),
		OutPath:    outcome.OutPath,
	}
	// Scripts written to disk are not echoed back.
	if outcome.OutPath == "" {
		res.Script = outcome.Script
	}
	return res, nil
}

type imagePreviewArgs struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	MaxSize int    `json:"max_size"`
	Filter  string `json:"filter"`
	Out     string `json:"out"`
	Scale   int    `json:"scale"`
}

type previewResult struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	OutPath string `json:"out_path"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Out == "" {
		return nil, fmt.Errorf("%w: out is required", sampler.ErrInvalidInput)
	}
	mode, err := parseMode(a.Mode)
	if err != nil {
		return nil, err
	}

	outcome, err := convert.Run(s.log, convert.Request{
		Mode:         mode,
		ImagePath:    a.Path,
		MaxSize:      a.MaxSize,
		Filter:       a.Filter,
		PreviewPath:  a.Out,
		PreviewScale: a.Scale,
	})
	if err != nil {
		return nil, err
	}

	_, info, err := imaging.Load(outcome.PreviewPath)
	if err != nil {
		return nil, err
	}
	return &previewResult{Width: info.Width, Height: info.Height, OutPath: outcome.PreviewPath}, nil
}

// === Icon Handlers ===

type iconConvertArgs struct {
	Path      string `json:"path"`
	Out       string `json:"out"`
	Direction string `json:"direction"`
	Size      int    `json:"size"`
}

const (
	directionImageToIcon = "image_to_icon"
	directionIconToPNG   = "icon_to_png"
)

func (s *Server) handleIconConvert(args json.RawMessage) (interface{}, error) {
	var a iconConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Direction == "" {
		a.Direction = directionImageToIcon
	}
	if a.Size == 0 {
		a.Size = imaging.DefaultIconSize
	}

	switch a.Direction {
	case directionImageToIcon:
		if a.Out == "" {
			a.Out = filepath.Join(filepath.Dir(a.Path), imaging.DefaultIconName(a.Path, false))
		}
		return imaging.WriteIcon(a.Path, a.Out, a.Size)
	case directionIconToPNG:
		if a.Out == "" {
			a.Out = filepath.Join(filepath.Dir(a.Path), imaging.DefaultIconName(a.Path, true))
		}
		return imaging.IconToPNG(a.Path, a.Out)
	default:
		return nil, fmt.Errorf("%w: unknown direction %q (want %s or %s)",
			sampler.ErrInvalidInput, a.Direction, directionImageToIcon, directionIconToPNG)
	}
}
