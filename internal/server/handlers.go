package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-tint-mcp/internal/colormatrix"
	"github.com/ironsheep/image-tint-mcp/internal/config"
	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
	"github.com/ironsheep/image-tint-mcp/internal/imaging"
	"github.com/ironsheep/image-tint-mcp/internal/params"
	"github.com/ironsheep/image-tint-mcp/internal/slot"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "slot_configure", "slot_render").
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
// Configuration errors carry the offending key, value and section as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var call ToolCallParams
	if err := json.Unmarshal(req.Params, &call); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(call.Name, call.Arguments)
	if err != nil {
		s.log.WithFields(logrus.Fields{"tool": call.Name, "error": err}).Debug("tool failed")
		if ce, ok := apperrors.AsConfigError(err); ok {
			return s.errorResponse(req.ID, -32000, "Tool execution failed", map[string]string{
				"error":   ce.Error(),
				"key":     ce.Key,
				"value":   ce.Value,
				"section": ce.Section,
			})
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "slot_configure":
		return s.handleSlotConfigure(args)
	case "slot_render":
		return s.handleSlotRender(args)
	case "slot_info":
		return s.handleSlotInfo(args)
	case "slot_sample_color":
		return s.handleSlotSampleColor(args)
	case "slot_unload":
		return s.handleSlotUnload(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return apperrors.New(apperrors.CategoryInput, "arguments", apperrors.ErrEmptyInput)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return apperrors.New(apperrors.CategoryInput, "arguments", err)
	}
	return nil
}

// slotFor returns the named slot, creating it when create is set.
func (s *Server) slotFor(name string, create bool) (*slot.Slot, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.CategoryInput, "slot", apperrors.ErrEmptyInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[name]
	if !ok {
		if !create {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSlot, name)
		}
		sl = slot.New(name, slot.WithLogger(s.log))
		s.slots[name] = sl
	}
	return sl, nil
}

// === Slot Handlers ===

type slotArgs struct {
	Slot string `json:"slot"`
}

type slotConfigureArgs struct {
	Slot    string `json:"slot"`
	Config  string `json:"config"`
	Section string `json:"section"`
	BaseDir string `json:"base_dir"`
	Force   bool   `json:"force"`
}

func (s *Server) handleSlotConfigure(args json.RawMessage) (interface{}, error) {
	var a slotConfigureArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Config == "" {
		return nil, apperrors.New(apperrors.CategoryInput, "config", apperrors.ErrEmptyInput)
	}
	if a.Section == "" {
		a.Section = a.Slot
	}
	if a.BaseDir == "" {
		a.BaseDir = filepath.Dir(a.Config)
	}

	src, err := config.LoadTOML(a.Config)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryConfig, "load config", err)
	}

	sl, err := s.slotFor(a.Slot, true)
	if err != nil {
		return nil, err
	}
	if err := sl.ReadConfig(src, a.Section); err != nil {
		return nil, err
	}

	sl.Load(resolveImagePath(sl.ImageName(), a.BaseDir), a.Force)
	return describeSlot(sl), nil
}

// resolveImagePath joins a relative image name onto baseDir.
func resolveImagePath(name, baseDir string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(baseDir, name)
}

func (s *Server) handleSlotRender(args json.RawMessage) (interface{}, error) {
	var a slotArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sl, err := s.slotFor(a.Slot, false)
	if err != nil {
		return nil, err
	}

	img := sl.Image()
	if img == nil {
		return nil, fmt.Errorf("%w in slot %s", apperrors.ErrNoImage, a.Slot)
	}
	res, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "render", err)
	}
	return res, nil
}

func (s *Server) handleSlotInfo(args json.RawMessage) (interface{}, error) {
	var a slotArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sl, err := s.slotFor(a.Slot, false)
	if err != nil {
		return nil, err
	}
	return describeSlot(sl), nil
}

type slotSampleColorArgs struct {
	Slot string `json:"slot"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSlotSampleColor(args json.RawMessage) (interface{}, error) {
	var a slotSampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sl, err := s.slotFor(a.Slot, false)
	if err != nil {
		return nil, err
	}

	img := sl.Image()
	if img == nil {
		return nil, fmt.Errorf("%w in slot %s", apperrors.ErrNoImage, a.Slot)
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

func (s *Server) handleSlotUnload(args json.RawMessage) (interface{}, error) {
	var a slotArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	sl, err := s.slotFor(a.Slot, false)
	if err != nil {
		return nil, err
	}
	sl.Dispose()

	s.mu.Lock()
	delete(s.slots, a.Slot)
	s.mu.Unlock()

	return map[string]interface{}{"slot": a.Slot, "unloaded": true}, nil
}

// === Results ===

// CropInfo is the JSON form of params.CropRect.
type CropInfo struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Anchor string `json:"anchor"`
}

// ParametersInfo is the JSON form of params.Parameters.
type ParametersInfo struct {
	Crop      *CropInfo     `json:"crop,omitempty"`
	Greyscale bool          `json:"greyscale"`
	Matrix    [5][5]float64 `json:"color_matrix"`
	// Effective is the single matrix equivalent to the greyscale pass
	// followed by Matrix, ignoring clamping between the passes.
	Effective [5][5]float64 `json:"effective_matrix"`
	Flip      string        `json:"flip"`
	Rotate    float64       `json:"rotate"`
}

// SlotInfo describes a slot.
type SlotInfo struct {
	Slot       string             `json:"slot"`
	Loaded     bool               `json:"loaded"`
	ImageName  string             `json:"image_name,omitempty"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Source     *imaging.ImageInfo `json:"source,omitempty"`
	Parameters ParametersInfo     `json:"parameters"`
	Pending    params.DirtyFlags  `json:"pending"`
	Stats      slot.Stats         `json:"stats"`
}

func describeSlot(sl *slot.Slot) *SlotInfo {
	info := &SlotInfo{
		Slot:       sl.Name(),
		Loaded:     sl.IsLoaded(),
		ImageName:  sl.ImageName(),
		Source:     imaging.Describe(sl.Source()),
		Parameters: describeParams(sl.Params()),
		Pending:    sl.Pending(),
		Stats:      sl.Stats(),
	}
	if img := sl.Image(); img != nil {
		info.Width = img.Bounds().Dx()
		info.Height = img.Bounds().Dy()
	}
	return info
}

func describeParams(p params.Parameters) ParametersInfo {
	info := ParametersInfo{
		Greyscale: p.Greyscale,
		Matrix:    p.Matrix,
		Effective: p.Matrix,
		Flip:      p.Flip.String(),
		Rotate:    p.Rotate,
	}
	if p.Greyscale {
		info.Effective = colormatrix.Multiply(colormatrix.Greyscale(), p.Matrix)
	}
	if p.Crop.Enabled() {
		info.Crop = &CropInfo{
			X:      p.Crop.X,
			Y:      p.Crop.Y,
			Width:  p.Crop.Width,
			Height: p.Crop.Height,
			Anchor: p.Anchor.String(),
		}
	}
	return info
}
