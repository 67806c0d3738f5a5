// Package pkg provides the core libraries for graph3d 3D graph rendering.
//
// # Overview
//
// graph3d draws mathematical graphs as interactive 3D scenes and animates
// them with caller-supplied state-transition functions. The pkg directory
// is organized into four main areas:
//
//  1. Domain model - graph structure and attributes ([graph]), placement
//     math ([spatial]), and layout providers ([layout])
//  2. Rendering - scene construction ([scene]), camera ([camera]),
//     scheduling ([anim]), and the engine contract ([engine])
//  3. Persistence - layout caching ([cache]), scene documents ([store]),
//     and graph files ([graphio])
//  4. Assembly - the one-call viewer surface ([viz])
//
// # Architecture
//
// The typical data flow through graph3d:
//
//	Graph file / generator
//	         ↓
//	layout (spring, lattice, neato; cached)
//	         ↓
//	scene (one engine handle per element)
//	         ↓
//	anim scheduler ← state function mutates attributes
//	         ↓
//	engine frame loop (softrender or any [engine.Engine])
//
// The [viz] package wires the whole column; everything below it is usable
// on its own. Cross-cutting concerns live in [errors] (coded errors),
// [observability] (hook registry), and [buildinfo] (version stamping).
package pkg
