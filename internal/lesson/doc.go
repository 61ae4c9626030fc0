// Package lesson models generated lesson content as an immutable, ordered
// sequence of sections and typed content blocks.
//
// Payloads arrive from the lesson-generation service either in the modern
// shape (each section carries content_blocks) or the legacy shape (a single
// content string plus animation_type per section). Parse, ParseYAML, and Load
// accept both and return one normalized Content value: durations defaulted,
// animation styles inherited from sections, text NFC-normalized. Task status
// envelopes wrap that payload while generation is still running; use
// Envelope.Lesson to obtain content only once the task has completed.
//
// Content values are never mutated after construction, so a single value may
// back any number of players.
package lesson
