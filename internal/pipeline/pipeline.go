// Package pipeline orchestrates a run: discover inputs, parse each file,
// fold records through the engine, deliver the datasets to the sink, and
// assemble a structured report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crimson-sun/restat/internal/engine"
	"github.com/crimson-sun/restat/internal/output"
	"github.com/crimson-sun/restat/internal/output/file"
	"github.com/crimson-sun/restat/internal/source"
)

// Fatal preconditions: nothing is scanned and no outputs are written.
var (
	ErrEmptyAllowList = errors.New("pipeline: channel allow-list is empty")
	ErrNoInputs       = errors.New("pipeline: no input files matched")
)

// FileOutcome records how one input file fared.
type FileOutcome struct {
	Path    string
	Records int
	Skipped bool
	Reason  string // set when Skipped
}

// OutputSummary is the per-destination confirmation for the report.
type OutputSummary struct {
	Destination string
	Records     int
}

// Report is the structured result of a run. Presentation lives in the
// report package; nothing here is formatted for humans.
type Report struct {
	RunID   string
	Files   []FileOutcome
	Scanned int
	Kept    int
	Ignored []string
	Outputs []OutputSummary
}

// Processed returns the number of files parsed successfully.
func (r Report) Processed() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped {
			n++
		}
	}
	return n
}

// Pipeline connects the input source, the reshaping engine, and a sink.
type Pipeline struct {
	channels []string
	dir      string
	pattern  string
	sink     output.Sink
}

// New creates a Pipeline reading dir/pattern, filtering on channels, and
// delivering results to sink.
func New(channels []string, dir, pattern string, sink output.Sink) *Pipeline {
	return &Pipeline{
		channels: channels,
		dir:      dir,
		pattern:  pattern,
		sink:     sink,
	}
}

// Run executes one conversion. Fatal preconditions return ErrEmptyAllowList
// or ErrNoInputs before anything is written. A malformed input file is
// skipped with a warning; an invalid qualifying record aborts the run.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	if len(p.channels) == 0 {
		return Report{}, ErrEmptyAllowList
	}

	files, err := source.Discover(p.dir, p.pattern)
	if err != nil {
		return Report{}, fmt.Errorf("pipeline: %w", err)
	}
	if len(files) == 0 {
		return Report{}, fmt.Errorf("%w (pattern %q in %s)", ErrNoInputs, p.pattern, p.dir)
	}

	slog.Info("starting run", "files", len(files), "channels", len(p.channels))

	eng := engine.New(p.channels)
	report := Report{RunID: uuid.NewString()}

	for _, path := range files {
		slog.Info("processing", "file", path)
		records, err := source.Load(path)
		if err != nil {
			slog.Warn("skipping malformed input file", "file", path, "error", err)
			report.Files = append(report.Files, FileOutcome{
				Path:    path,
				Skipped: true,
				Reason:  err.Error(),
			})
			continue
		}
		if err := eng.Consume(records); err != nil {
			return Report{}, fmt.Errorf("pipeline: %s: %w", path, err)
		}
		report.Files = append(report.Files, FileOutcome{Path: path, Records: len(records)})
	}

	res := eng.Result()
	report.Scanned = res.Scanned
	report.Kept = res.Kept
	report.Ignored = res.Ignored

	if err := p.sink.WriteUsers(ctx, res.Users); err != nil {
		return Report{}, fmt.Errorf("pipeline: %w", err)
	}
	if err := p.sink.WriteMessages(ctx, res.Messages); err != nil {
		return Report{}, fmt.Errorf("pipeline: %w", err)
	}
	if err := p.sink.WriteCommands(ctx, res.Commands); err != nil {
		return Report{}, fmt.Errorf("pipeline: %w", err)
	}

	report.Outputs = []OutputSummary{
		{Destination: file.UserFile, Records: len(res.Users)},
		{Destination: file.MessageFile, Records: len(res.Messages)},
		{Destination: file.CommandFile, Records: len(res.Commands)},
	}

	slog.Info("run complete", "run_id", report.RunID,
		"scanned", report.Scanned, "kept", report.Kept,
		"ignored_channels", len(report.Ignored))
	return report, nil
}

// Close shuts down the sink.
func (p *Pipeline) Close() error {
	return p.sink.Close()
}
