// Package gl provides a small, WebGL-shaped drawing context for xgraph.
//
// The context covers exactly what a line plot needs: shader compilation, a linked
// program with named attributes, array buffers, constant vertex attributes and
// DrawArrays with point and line primitives. Two backends implement it:
//
//	Soft    rasterizes into a caller-provided Target on the CPU and records every
//	        clear and draw call. Used for headless rendering and tests.
//	Ebiten  draws into an offscreen ebiten image on the GPU. The fragment stage is a
//	        Kage program compiled by ebiten; the vertex stage is fixed pass-through.
//
// Both backends share the same state machine (handles, bindings, attribute arrays,
// viewport), so a caller that works against Soft behaves the same on the GPU.
//
// Vertex stage:
//
// Vertex shaders are GLSL sources. The context reads their `attribute` declarations
// to assign locations and requires a `main` that writes gl_Position; the body itself
// is not executed. Positions come from the first enabled 2-component attribute array,
// and color from the constant value of the first vec4 attribute that is not enabled
// as an array (default 0,0,0,1).
package gl
