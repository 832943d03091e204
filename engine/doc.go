// Package engine is the top-level facade: it wires catalog, dag, and
// search behind a single Config/Run entry point, resolving a model name
// against a caller-supplied modelzoo.Builder registry, running the search
// with a caller-supplied cost.Oracle and Xfer set unless disabled, and
// optionally exporting the result via graphio.
//
// engine is a library entry point, not a command-line program; turning
// its returned error into a process exit code is left to the caller.
package engine
