// Package cli provides the interactive answerbook terminal client.
//
// It wires configuration, the SQLite-backed knowledge base and a REPL. The
// REPL keeps the presentation state (selected category filter, current
// search query, pending delete) and runs until the user exits or input ends.
//
// Key features:
//   - List, search and filter answers (by category or favorites)
//   - Add, edit, delete and favorite answers
//   - Category overview with counts, adding categories
//   - Copy an answer to the clipboard
//   - Full and single-answer JSON export, import with merge
//
// The REPL is started via App.Run(ctx). See runREPL for the command set.
package cli
