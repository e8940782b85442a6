// Package viz provides terminal-based playback of a loaded run.
//
// The package implements an interactive player using the Bubble Tea
// framework:
//
//   - [Player]: frame-by-frame playback synced to the video clock
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [DrawFrame]: shared frame painter, also used by the SVG exporter
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Playback sessions can be recorded as GIF animations using the G key.
// Recordings are saved to the current directory.
package viz
