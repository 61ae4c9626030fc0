// Package logging assembles structured slog loggers and formatting helpers used
// across lessonreel.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so library and export code can tag log
// lines with task IDs and lesson titles. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
