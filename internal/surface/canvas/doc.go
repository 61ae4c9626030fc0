// Package canvas paints lesson frames into raster images with fogleman/gg.
//
// Opacity becomes alpha and a slide offset becomes a horizontal translation.
// Text is laid out with surface.Wrap using the loaded font's advances.
package canvas
