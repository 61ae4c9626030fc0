// Package playback drives a lesson's timed reveal.
//
// Scheduler is a pure reducer: every method takes the current time in
// milliseconds and returns the next state without mutating the receiver, so
// it can be tested without goroutines or real clocks. Player is the thin
// imperative adapter around it: it owns one Scheduler behind a mutex, runs the
// tick loop, and fans out events to subscribers.
package playback
