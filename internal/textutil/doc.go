// Package textutil provides text processing helpers shared by the lesson
// model, the reveal renderer, and the rendering surfaces.
//
// The primary use cases are:
//   - Normalizing lesson text (NFC, LF line endings) at load time
//   - Counting and slicing text by grapheme cluster so typing reveals never
//     split a user-perceived character
//   - Splitting list blocks into items with bullet markers removed
//   - Sanitizing filenames and path segments for safe filesystem use
package textutil
