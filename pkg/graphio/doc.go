// Package graphio provides JSON and YAML import and export for graphs.
//
// # Overview
//
// This package enables serialization of renderable graphs to and from a
// simple document format. The format is designed for:
//
//   - Feeding externally produced graphs into the renderer
//   - Saving a graph together with the visual attributes it has reached
//   - Round-trip preservation: import, render, export, and re-import identically
//
// # Format
//
// A document has a graph kind and two arrays:
//
//	{
//	  "kind": "undirected",
//	  "nodes": [
//	    {"id": "a", "pos": [0, 0, 0]},
//	    {"id": "b", "pos": [0, 0, 4], "color": [1, 0, 0, 1], "label": "b"}
//	  ],
//	  "edges": [
//	    {"from": "a", "to": "b"}
//	  ]
//	}
//
// The YAML form is the same document in YAML syntax.
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - pos: Position as exactly three numbers; other arities are rejected.
//     Nodes without positions get laid out at load time.
//   - color: RGBA with channels in [0, 1]
//   - label: Billboard text
//   - label_color: RGBA label color
//   - size: Uniform node scale
//   - val: Freeform object for simulation state
//
// Each edge must have "from" and "to" referencing node IDs; color and label
// fields mirror the node's. Parallel edges are expressed by repeating the
// pair under a multi kind.
//
// # Import
//
// Use [ImportFile] to dispatch on the file extension, or [ReadJSON] and
// [ReadYAML] to read from any io.Reader. All imports validate the document
// against the graph's structural rules (unknown endpoints, duplicate IDs,
// parallel edges in non-multi kinds) and the position arity rule.
//
// # Export
//
// Use [ExportJSON] and [ExportYAML] to write files, or [WriteJSON] and
// [WriteYAML] for io.Writer output. Exports include every attribute that has
// been resolved or mutated, so a running simulation's visual state survives
// the round trip.
package graphio
