package restat

import (
	"context"
	"fmt"
	"strings"

	"github.com/crimson-sun/restat/internal/config"
	"github.com/crimson-sun/restat/internal/output"
	"github.com/crimson-sun/restat/internal/output/file"
	"github.com/crimson-sun/restat/internal/output/multi"
	"github.com/crimson-sun/restat/internal/output/sqlite"
	"github.com/crimson-sun/restat/internal/pipeline"
)

// Stable aliases for the structured run result — internal representations
// may evolve independently without breaking consumers.
type (
	Report        = pipeline.Report
	FileOutcome   = pipeline.FileOutcome
	OutputSummary = pipeline.OutputSummary
)

// Fatal preconditions, re-exported for errors.Is checks.
var (
	ErrEmptyAllowList = pipeline.ErrEmptyAllowList
	ErrNoInputs       = pipeline.ErrNoInputs
)

// Run performs one conversion and returns its structured report.
// See the package documentation for an example.
func Run(ctx context.Context, opts ...Option) (Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sinks := []output.Sink{file.New(o.outputDir)}
	if o.sqlitePath != "" {
		sq, err := sqlite.New(o.sqlitePath)
		if err != nil {
			return Report{}, fmt.Errorf("restat: %w", err)
		}
		sinks = append(sinks, sq)
	}

	channels := config.ParseChannels(strings.Join(o.channels, " "))
	p := pipeline.New(channels, o.dir, o.pattern, multi.New(sinks...))

	rep, err := p.Run(ctx)
	cerr := p.Close()
	if err != nil {
		return Report{}, err
	}
	if cerr != nil {
		return Report{}, fmt.Errorf("restat: close: %w", cerr)
	}
	return rep, nil
}
