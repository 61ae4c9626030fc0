// Package surface defines what a rendering host provides to the player.
//
// A Surface paints frames. A Measurer reports text width in the surface's
// own units so Wrap can lay out lines without the scheduler knowing whether
// the host counts terminal cells or pixels. Diagram rendering is delegated
// through DiagramRenderer.
package surface
