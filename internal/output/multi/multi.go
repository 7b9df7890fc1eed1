package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/restat/internal/model"
	"github.com/crimson-sun/restat/internal/output"
)

// Multi fans each dataset out to multiple output.Sink implementations.
// If one sink fails, the remaining sinks still receive the dataset.
type Multi struct {
	sinks []output.Sink
}

// New creates a Multi that fans out to the given sinks.
func New(sinks ...output.Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) WriteUsers(ctx context.Context, users []model.UserEntry) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.WriteUsers(ctx, users); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) WriteMessages(ctx context.Context, events []model.MessageEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.WriteMessages(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) WriteCommands(ctx context.Context, events []model.CommandEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.WriteCommands(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped sink, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
