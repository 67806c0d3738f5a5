// Package graph provides the mutable graph structure rendered by graph3d.
//
// A [Graph] holds nodes and edges together with the visual attribute records
// the renderer reads and simulations mutate. Four kinds are supported:
// undirected, directed, and their multigraph variants that allow parallel
// edges between the same pair of nodes.
//
// Node identity is an opaque string key. Edge identity is the (From, To)
// pair plus a parallel-edge Key that is always 0 outside multigraphs.
//
// # Attributes
//
// Every node carries a [NodeAttrs] record and every edge an [EdgeAttrs]
// record. The renderer-known fields (position, color, label, label color,
// size) are typed; simulation-specific state goes in the open Val map.
// Attribute fields that have never been assigned are nil pointers, which is
// how the scene builder distinguishes "caller supplied" from "apply default".
//
// # Topology
//
// The renderer treats topology as static: nodes and edges may be added
// freely before the scene is built, but not afterwards. The scene package
// enforces this at sync time.
package graph
