// Package preflight provides readiness checks for the filesystem paths,
// fonts and library database lessonreel depends on.
//
// The CLI "config validate" command runs RunAll and prints one line per
// check. Checks never create anything; a missing frames directory passes
// when its nearest existing parent is writable, since export creates it.
package preflight
