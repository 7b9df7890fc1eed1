package restat

type options struct {
	dir        string
	outputDir  string
	pattern    string
	channels   []string
	sqlitePath string
}

// Option configures a conversion run.
type Option func(*options)

// WithChannels sets the channel allow-list. Each value is a free-form
// string; every run of digits in it becomes one identifier, so both plain
// IDs and bracketed pasted lists work. Required — a run without channels
// fails with ErrEmptyAllowList.
func WithChannels(channels ...string) Option {
	return func(o *options) {
		o.channels = channels
	}
}

// WithDir sets the directory scanned for input files. Default: ".".
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithOutputDir sets the directory receiving the analyse_*.json files.
// Default: ".".
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithPattern sets the input file glob. Default: "stat-*.json".
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithSQLite additionally exports the datasets to a SQLite database file
// at path, recreated on every run. Default: disabled.
func WithSQLite(path string) Option {
	return func(o *options) {
		o.sqlitePath = path
	}
}

func defaultOptions() options {
	return options{
		dir:       ".",
		outputDir: ".",
		pattern:   "stat-*.json",
	}
}
