// Package server implements the MCP (Model Context Protocol) server for the
// image builder.
//
// This package provides a JSON-RPC 2.0 server that exposes the build pipeline
// and the palette through the MCP protocol, so an MCP client can turn an image
// URL into a grid of block labels.
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
// Building:
//   - buildimage: Fetch, scale and palette-match an image, then place it
//   - image_target_dimensions: Preview the scaled grid size
//   - image_dominant_colors: Dominant source colors and their palette labels
//
// Palette:
//   - palette_list: List entries in match order
//   - palette_match: Closest label for one color
//   - palette_reload: Re-read the config file
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: {"kind": ..., "error": ...}, where kind is one of fetch_error,
//     decode_error, no_palette_configured, invalid_palette_entry,
//     invalid_input, placement_error or unknown
//
// A buildimage call without a url also carries "usage" in data.
//
// # Usage
//
//	srv := server.New(server.Options{Builder: b, Store: store, Reloader: r})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
