package output

import (
	"context"

	"github.com/crimson-sun/restat/internal/model"
)

// Sink defines the interface for destinations of the reshaped datasets.
// A run delivers each dataset exactly once, then closes the sink.
type Sink interface {
	WriteUsers(ctx context.Context, users []model.UserEntry) error
	WriteMessages(ctx context.Context, events []model.MessageEvent) error
	WriteCommands(ctx context.Context, events []model.CommandEvent) error
	Close() error
}
