package loader

import "go.uber.org/zap"

// Option configures Load and ReadSource.
type Option func(*options)

type options struct {
	workers int
	sheet   string
	comma   rune
	logger  *zap.Logger
}

// WithWorkers bounds how many sources are parsed at once.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithSheet selects the worksheet read from Excel workbooks.
// Empty means the first sheet.
func WithSheet(name string) Option {
	return func(o *options) { o.sheet = name }
}

// WithComma sets the CSV field separator.
func WithComma(r rune) Option {
	return func(o *options) { o.comma = r }
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		workers: 4,
		comma:   ',',
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}
