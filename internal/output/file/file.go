// Package file writes the reshaped datasets as pretty-printed JSON array
// files in a target directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crimson-sun/restat/internal/model"
)

// Output file names, written relative to the sink's directory.
const (
	UserFile    = "analyse_user.json"
	MessageFile = "analyse_msg.json"
	CommandFile = "analyse_cmd.json"
)

// Sink writes each dataset to its own JSON file: 2-space indentation,
// non-ASCII characters preserved literally.
type Sink struct {
	dir string
}

// New creates a file sink writing into dir.
func New(dir string) *Sink {
	return &Sink{dir: dir}
}

func (s *Sink) WriteUsers(_ context.Context, users []model.UserEntry) error {
	return s.write(UserFile, users)
}

func (s *Sink) WriteMessages(_ context.Context, events []model.MessageEvent) error {
	return s.write(MessageFile, events)
}

func (s *Sink) WriteCommands(_ context.Context, events []model.CommandEvent) error {
	return s.write(CommandFile, events)
}

func (s *Sink) Close() error {
	return nil
}

func (s *Sink) write(name string, v any) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("file sink: create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("file sink: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("file sink: close %s: %w", path, err)
	}
	return nil
}
