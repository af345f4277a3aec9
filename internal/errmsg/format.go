// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Connection and setup
	OpConnect    Op = "connect to MPD"
	OpConfigLoad Op = "load config"
	OpCacheOpen  Op = "open album art cache"

	// Album art operations
	OpAlbumArtFetch  Op = "fetch album art"
	OpAlbumArtRender Op = "render album art"
	OpAlbumArtSave   Op = "save album art"

	// Playback operations
	OpPlaybackStart   Op = "start playback"
	OpPlaybackControl Op = "control playback"
	OpPlaybackSeek    Op = "seek"

	// Queue operations
	OpQueueLoad   Op = "load queue"
	OpQueueAdd    Op = "add to queue"
	OpQueueMove   Op = "move queue item"
	OpQueueDelete Op = "delete queue item"
	OpQueueClear  Op = "clear queue"

	// Database operations
	OpDatabaseList   Op = "list database"
	OpDatabaseSearch Op = "search database"
	OpDatabaseUpdate Op = "update database"
	OpReadComments   Op = "read comments"

	// Status
	OpStatusLoad Op = "load status"
	OpSongLoad   Op = "load current song"

	// External commands
	OpSubcommand Op = "run subcommand"

	// Output
	OpRender Op = "write output"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
