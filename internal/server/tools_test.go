package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"slot_configure",
		"slot_render",
		"slot_info",
		"slot_sample_color",
		"slot_unload",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema missing 'properties' field")
			}

			// Every required parameter must be described.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredSlot(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasSlot := false
			for _, r := range requiredList {
				if r == "slot" {
					hasSlot = true
					break
				}
			}
			if !hasSlot {
				t.Error("Tool should require 'slot' parameter")
			}
		})
	}
}

func TestToolDefinitions_ConfigureDefaults(t *testing.T) {
	var configure Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "slot_configure" {
			configure = tool
		}
	}

	props := configure.InputSchema["properties"].(map[string]interface{})
	force, ok := props["force"].(map[string]interface{})
	if !ok {
		t.Fatal("slot_configure should have a force parameter")
	}
	if force["default"] != false {
		t.Errorf("force default: got %v, want false", force["default"])
	}

	required := configure.InputSchema["required"].([]string)
	if len(required) != 2 || required[1] != "config" {
		t.Errorf("required: got %v, want [slot config]", required)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
