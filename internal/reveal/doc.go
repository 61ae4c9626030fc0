// Package reveal computes the visible part of a lesson content block for a
// given reveal progress in [0, 1].
//
// Every function here is pure: the same block and progress always produce the
// same Output, so hosts may seek to an arbitrary progress without replaying
// intermediate frames. Rendering surfaces (terminal, canvas) paint an Output;
// they never decide what is visible.
//
// Reveal styles form a closed set (Typing, Drawing, FadeIn, SlideIn, plus the
// Opacity fallback for unknown animation types). Content types add their own
// structure on top: list items and code lines are revealed one after another
// with the same linear ramp the scheduler uses to stagger blocks inside a
// section, and diagrams are gated by a visibility threshold and handed to a
// diagram renderer untouched.
package reveal
