package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig holds configuration for a write command execution
type RunnerConfig struct {
	Title           string            // Command title (e.g., "Set Preset")
	Command         string            // Full command (e.g., "jgaura set-preset AB01 Low")
	Params          map[string]string // Parameters to display in header
	StepNames       []string          // Names for each step
	Troubleshooting func(error) []string
	Output          io.Writer // Output writer (default: os.Stdout)
	Width           int       // Render width (default: terminal width)
}

// Runner orchestrates the UI for a command that changes gateway state.
// It manages the header → steps → result flow and provides a callback for
// reporting progress.
type Runner struct {
	config   RunnerConfig
	header   *Header
	progress *Progress
	output   io.Writer
	width    int
}

// NewRunner creates a new runner for a write command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := config.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	var progress *Progress
	if len(config.StepNames) > 0 {
		progress = NewProgress("", len(config.StepNames))
		progress.SetWidth(width)
		progress.SetStepNames(config.StepNames)
	}

	return &Runner{
		config:   config,
		header:   header,
		progress: progress,
		output:   config.Output,
		width:    width,
	}
}

// Operation is the work a Runner wraps. It reports progress through onStep
// and returns the details shown in the success box.
type Operation func(ctx context.Context, onStep StepCallback) (map[string]string, error)

// Run executes the operation with UI updates.
// It displays the header, prints each finished step and shows the result.
func (r *Runner) Run(ctx context.Context, operation Operation) (map[string]string, error) {
	start := time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := operation(ctx, r.stepCallback())
	duration := time.Since(start)

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		var tips []string
		if r.config.Troubleshooting != nil {
			tips = r.config.Troubleshooting(err)
		}
		result := NewFailureResult(r.config.Title+" failed", err, tips)
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
		return details, err
	}

	if details == nil {
		details = make(map[string]string)
	}
	details["Duration"] = duration.Round(time.Millisecond).String()

	result := NewSuccessResult(r.config.Title+" complete", details)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())

	return details, nil
}

// stepCallback prints each step once it has finished.
func (r *Runner) stepCallback() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil || stepNumber < 1 || stepNumber > len(r.progress.Steps) {
			return
		}

		if name != "" {
			r.progress.Steps[stepNumber-1].Name = name
		}
		r.progress.UpdateStep(stepNumber, status, message)

		step := r.progress.Steps[stepNumber-1]
		switch status {
		case StepComplete, StepFailed, StepSkipped:
			_, _ = fmt.Fprintln(r.output, r.progress.renderStepLine(step))
		case StepRunning:
			// Overwritten when the step finishes
			_, _ = fmt.Fprint(r.output, r.progress.renderStepLine(step)+"\r")
		}
	}
}

// Progress returns the runner's step tracker, or nil if it has no steps.
func (r *Runner) Progress() *Progress {
	return r.progress
}
