package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-builder-mcp/internal/builder"
	"github.com/ironsheep/image-builder-mcp/internal/imaging"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

var (
	errUnknownTool      = errors.New("unknown tool")
	errInvalidArguments = errors.New("invalid arguments")
	errReloadDisabled   = errors.New("palette reload is not configured")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "buildimage", "palette_match").
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
// Tool execution errors return a JSON-RPC error response with code -32000 and
// the failure kind in data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", errorData(err))
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Building
	case "buildimage":
		return s.handleBuildImage(ctx, args)
	case "image_target_dimensions":
		return s.handleTargetDimensions(args)
	case "image_dominant_colors":
		return s.handleDominantColors(ctx, args)

	// Palette
	case "palette_list":
		return s.handlePaletteList(args)
	case "palette_match":
		return s.handlePaletteMatch(args)
	case "palette_reload":
		return s.handlePaletteReload(args)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// errorData describes a tool failure for MCPError.Data.
func errorData(err error) map[string]interface{} {
	kind := builder.KindOf(err)
	if errors.Is(err, errInvalidArguments) {
		kind = builder.KindInvalidInput
	}
	data := map[string]interface{}{
		"kind":  kind.String(),
		"error": err.Error(),
	}
	if errors.Is(err, builder.ErrUsage) {
		data["usage"] = builder.Usage
	}
	return data
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Absent arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// === Build Handlers ===

type buildImageArgs struct {
	URL          string           `json:"url"`
	Origin       builder.Location `json:"origin"`
	MaxEdge      int              `json:"max_edge"`
	IncludeRows  *bool            `json:"include_rows"`
	PreviewScale int              `json:"preview_scale"`
}

type buildImageResult struct {
	*builder.Result
	Rows    [][]string             `json:"rows,omitempty"`
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

func (s *Server) handleBuildImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a buildImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MaxEdge < 0 {
		return nil, fmt.Errorf("%w: max_edge must be positive, got %d", errInvalidArguments, a.MaxEdge)
	}
	if a.PreviewScale < 0 || a.PreviewScale > imaging.MaxPreviewScale {
		return nil, fmt.Errorf("%w: preview_scale must be between 0 and %d, got %d",
			errInvalidArguments, imaging.MaxPreviewScale, a.PreviewScale)
	}

	res, err := s.builder.Build(ctx, builder.Request{
		URL:     a.URL,
		Origin:  a.Origin,
		MaxEdge: a.MaxEdge,
	})
	if err != nil {
		return nil, err
	}

	out := &buildImageResult{Result: res}
	if a.IncludeRows == nil || *a.IncludeRows {
		out.Rows = res.Grid.Rows()
	}
	if a.PreviewScale > 0 && res.Grid.Len() > 0 {
		preview, err := res.Preview(a.PreviewScale)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
		}
		out.Preview = preview
	}
	return out, nil
}

type targetDimensionsArgs struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	MaxEdge int `json:"max_edge"`
}

func (s *Server) handleTargetDimensions(args json.RawMessage) (interface{}, error) {
	var a targetDimensionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MaxEdge == 0 {
		a.MaxEdge = s.builder.MaxEdge()
	}
	return imaging.TargetDimensions(a.Width, a.Height, a.MaxEdge)
}

type dominantColorsArgs struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

func (s *Server) handleDominantColors(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	return s.builder.Analyze(ctx, a.URL, a.Count)
}

// === Palette Handlers ===

type paletteListResult struct {
	Count   int                 `json:"count"`
	Entries []palette.EntryInfo `json:"entries"`
}

func (s *Server) handlePaletteList(args json.RawMessage) (interface{}, error) {
	p := s.store.Load()
	return &paletteListResult{Count: p.Len(), Entries: p.Describe()}, nil
}

type paletteMatchArgs struct {
	Color string `json:"color"`
}

func (s *Server) handlePaletteMatch(args json.RawMessage) (interface{}, error) {
	var a paletteMatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	p := s.store.Load()
	c, err := palette.ParseHex(a.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return p.Match(c)
}

func (s *Server) handlePaletteReload(args json.RawMessage) (interface{}, error) {
	if s.reloader == nil {
		return nil, errReloadDisabled
	}
	return s.reloader.Reload()
}
