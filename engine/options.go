package engine

// ============================================================================
// BUILDER OPTIONS — Functional options for the table builders
// ============================================================================

// Option configures presentation of engine results.
type Option func(*config)

type config struct {
	SortBy      string // entry order; see SortEntries
	Limit       int    // keep the first N entries, 0 = all
	Title       string
	LabelWidth  int // truncate longer labels with "...", 0 = never
	OptionsShow int // options listed inline before collapsing to a count
}

// WithSort sets the entry order.
func WithSort(sortBy string) Option {
	return func(c *config) {
		c.SortBy = sortBy
	}
}

// WithLimit keeps only the top n entries after sorting.
func WithLimit(n int) Option {
	return func(c *config) {
		c.Limit = n
	}
}

// WithTitle overrides the generated table title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.Title = title
	}
}

// WithLabelWidth truncates answer labels wider than n runes.
func WithLabelWidth(n int) Option {
	return func(c *config) {
		c.LabelWidth = n
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		SortBy:      SortCountDesc,
		LabelWidth:  40,
		OptionsShow: 5,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
