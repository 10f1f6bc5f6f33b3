// Package server implements the MCP (Model Context Protocol) server for
// config-driven image slots.
//
// This package provides a JSON-RPC 2.0 server that lets an MCP client
// configure named image slots from TOML files and inspect the tinted,
// cropped and rotated images they produce.
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
// # Available Tools
//
//   - slot_configure: Bind a config section to a slot and load its image
//   - slot_render: Current image as base64 PNG
//   - slot_info: Dimensions, parameters, pending changes and work counters
//   - slot_sample_color: Color of one pixel of the current image
//   - slot_unload: Release a slot
//
// # Slots
//
// Slots are created by slot_configure and live until slot_unload or the end
// of the process. Reconfiguring a slot with unchanged settings and an
// unchanged image file does no decoding or drawing.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: the error string, or for configuration errors an object with
//     error, key, value and section
//
// An image that cannot be opened or decoded is not a tool error: it is
// logged, and the slot reports loaded=false.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
