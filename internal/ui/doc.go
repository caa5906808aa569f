// Package ui provides terminal UI components for the jgaura CLI.
//
// This package uses Lipgloss to render styled output and Bubble Tea for the
// live watch view. Apart from watch, components follow a "run once and exit"
// pattern: they render output but don't require user interaction.
//
// # Architecture
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Progress bar with step list showing the state of a write
//   - Result: Success/failure boxes with styled information
//   - RenderStatus: Thermostat table with hot-water state
//   - WatchModel: Bubble Tea model refreshing RenderStatus on an interval
//
// Write commands use a Runner, which manages the header → steps → result flow:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Set Preset",
//	    Command:   "jgaura set-preset AB01 Low",
//	    Params:    map[string]string{"Thermostat": "AB01", "Preset": "Low"},
//	    StepNames: []string{"Log in", "Send command", "Verify"},
//	})
//
//	_, err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) (map[string]string, error) {
//	    onStep(1, "", ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, "", ui.StepComplete, "")
//	    return nil, nil
//	})
//
// # Logging Integration
//
// Logging is controlled via the JGAURA_LOG_LEVEL environment variable or the
// --log-level flag. When unset, zap logging is silent so the styled output is
// displayed cleanly.
package ui
