// Package main hosts the lessonreel CLI entrypoint and command graph.
//
// The Cobra-based command tree plays lessons in the terminal, renders still
// frames and PNG frame sequences, inspects lesson structure, and manages the
// local library of generation tasks. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on
// presentation instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
