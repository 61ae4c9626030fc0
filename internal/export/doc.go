// Package export renders a lesson to a numbered PNG sequence.
//
// Playback runs on a manual clock stepped once per frame, so the output is
// the same on every run regardless of machine speed. The output directory is
// guarded by a lock file so two exports cannot interleave frames.
package export
