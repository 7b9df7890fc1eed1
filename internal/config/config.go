package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// defaultChannels is the historical embedded allow-list, kept as the
// fallback so a bare invocation behaves like earlier versions of the tool.
// Override with RESTAT_CHANNELS.
const defaultChannels = "1033929807"

// Config holds all restat configuration.
type Config struct {
	Channels   []string // channel allow-list
	InputDir   string   // directory scanned for input files
	Pattern    string   // input file glob, relative to InputDir
	OutputDir  string   // directory receiving the analyse_*.json files
	SQLitePath string   // optional SQLite export; "" disables
	LogLevel   string   // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Channels:   ParseChannels(getenv("RESTAT_CHANNELS", defaultChannels)),
		InputDir:   getenv("RESTAT_INPUT_DIR", "."),
		Pattern:    getenv("RESTAT_PATTERN", "stat-*.json"),
		OutputDir:  getenv("RESTAT_OUTPUT_DIR", "."),
		SQLitePath: os.Getenv("RESTAT_SQLITE_PATH"),
		LogLevel:   getenv("RESTAT_LOG_LEVEL", "info"),
	}
}

var channelID = regexp.MustCompile(`\d+`)

// ParseChannels extracts every run of digits from raw as a channel
// identifier, de-duplicated in first-occurrence order. The free-form
// syntax allows maintainers to paste bracketed, multi-line identifier
// lists straight into RESTAT_CHANNELS or a .env file.
func ParseChannels(raw string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, id := range channelID.FindAllString(raw, -1) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Validate checks the configuration, collecting all violations into a
// single error. An empty allow-list is not a config error — the pipeline
// reports it as a fatal precondition so callers injecting their own lists
// get the same behavior.
func (c Config) Validate() error {
	var errs []error
	if c.Pattern == "" {
		errs = append(errs, errors.New("config: input pattern is empty (set RESTAT_PATTERN)"))
	}
	if err := checkDir(c.InputDir); err != nil {
		errs = append(errs, fmt.Errorf("config: input dir: %w", err))
	}
	if err := checkDir(c.OutputDir); err != nil {
		errs = append(errs, fmt.Errorf("config: output dir: %w", err))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
