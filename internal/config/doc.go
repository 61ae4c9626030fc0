// Package config loads, normalizes, and validates lessonreel configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the LESSONREEL_CONFIG and LESSONREEL_LOG_LEVEL
// environment variables.
// Playback, rendering, and logging knobs for every command live on one Config
// so the CLI resolves them in a single pass.
package config
