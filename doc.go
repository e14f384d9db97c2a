// Package glwindow creates OpenGL-capable windows with GLFW and wires
// their event callbacks into a reactive signal graph.
//
// A window is wrapped by the root Screen of a tree of rectangular
// viewports that all share one GL context. Child screens inherit their
// parent's input channels by reference and override the mouse channels
// with node-local derivations: positions corrected for display scaling
// and the vertical-axis flip, and hit-testing where children occlude
// their parents.
//
// Everything is single-threaded and event-driven. Run drains the native
// event queue on the thread that owns the GL context; callbacks push
// values through the signal graph synchronously before the poll returns.
package glwindow
