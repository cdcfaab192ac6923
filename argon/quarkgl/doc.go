// Package quarkgl is a small software 3D engine: a scene graph of nodes, a fixed
// raster pipeline and ray picking.
//
// Pipeline (fixed):
//
//	Scene graph → World transforms → View/Projection → Clipping → Rasterization → Target.
//
// The renderer draws into a caller-provided Target, which may be a Viewport into a
// larger framebuffer (one per stereo eye). Cameras take an explicit pose and
// projection matrix so that a host can push its own per-view camera state.
//
// All math is float32. Callers holding float64 poses convert at the boundary.
package quarkgl
