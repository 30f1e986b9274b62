// Package logtail provides utilities for reading and formatting folio's log file.
//
// # Overview
//
// This package implements tail-like reading of the application log and turns
// zerolog's JSON lines into the compact form shown by the TUI log view. It is
// optimized for reading the last N lines from a potentially large file
// without loading the entire file into memory.
//
// # Core Functionality
//
//  1. Read: Extract the last N lines from a log file
//  2. Parse: Decode a zerolog JSON line into an Entry
//  3. Format/FormatLines: Render entries as one readable line each
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Advance index modulo maxLines
//	3. Reassemble from the oldest slot
//
// This approach scans the file once and uses O(maxLines) memory. A
// non-positive maxLines reads every line. A missing file is not an error;
// the log simply has nothing to show yet.
//
//	lines, err := logtail.Read(cfg.Log.File, 400)
//
// # Line Format
//
// Format maps the well-known zerolog keys onto a fixed layout and appends the
// remaining fields sorted by key:
//
//	{"level":"info","component":"ui","view":"favorites","time":"...","message":"view changed"}
//	→ 2025-10-08 21:01:05 INFO [ui] – view changed view=favorites
//
// Values with spaces or quotes are quoted. Lines that are not JSON (for
// example a panic trace) pass through unchanged.
package logtail
