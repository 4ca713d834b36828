// Package cli provides the interactive Linguo command-line player client.
//
// It wires configuration, local storage, the sync API client, and an
// interactive REPL. Browsing the catalog, downloading decks, and recording
// listening sessions all work without an account; logging in only unlocks
// cross-device synchronization of review progress.
//
// Key features:
//   - List the deck catalog with downloaded/due markers
//   - Download / delete decks for offline playback
//   - Record completed sessions and reschedule reviews
//   - Sync review metadata with the server
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
