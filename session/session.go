package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spektr-org/surveyq/config"
	"github.com/spektr-org/surveyq/loader"
	"github.com/spektr-org/surveyq/logging"
	"github.com/spektr-org/surveyq/schema"
	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// SESSION — The loaded dataset: merged table plus its question catalog
// ============================================================================
// A Session is immutable once opened. Queries take it by value through
// Table and Catalog; reloading produces a new Session rather than mutating
// the current one.
// ============================================================================

// NotLoadedError reports a query made before any dataset was loaded.
type NotLoadedError struct{}

func (e *NotLoadedError) Error() string {
	return "no survey data loaded; run 'load' first"
}

// Session is one loaded survey.
type Session struct {
	ID       uuid.UUID
	Table    *table.Table
	Catalog  *schema.Catalog
	Sources  []string
	LoadedAt time.Time
}

// Open loads and merges paths, then classifies every column.
func Open(ctx context.Context, paths []string, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger = logging.OrNop(logger)

	tbl, err := loader.Load(ctx, paths,
		loader.WithWorkers(cfg.Loader.Workers),
		loader.WithSheet(cfg.Loader.Sheet),
		loader.WithComma(cfg.CommaRune()),
		loader.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	catalog := schema.NewCatalog(tbl,
		schema.WithDelimiter(cfg.Classifier.Delimiter),
		schema.WithThresholds(cfg.Classifier.MaxUniqueRatio, cfg.Classifier.MaxOptions),
	)

	s := &Session{
		ID:       uuid.New(),
		Table:    tbl,
		Catalog:  catalog,
		Sources:  append([]string(nil), paths...),
		LoadedAt: time.Now().UTC(),
	}
	logger.Debug("Session opened",
		zap.String("session", s.ID.String()),
		zap.Int("respondents", tbl.Len()),
		zap.Int("questions", catalog.Len()))
	return s, nil
}

// ============================================================================
// MANAGER — Holds the current session for long-lived callers
// ============================================================================

// Manager owns the current session. Safe for concurrent use.
type Manager struct {
	cfg    *config.Config
	logger *zap.Logger

	mu      sync.RWMutex
	current *Session
}

// NewManager creates a Manager with no session loaded.
func NewManager(cfg *config.Config, logger *zap.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Manager{cfg: cfg, logger: logging.OrNop(logger)}
}

// Load opens a new session and makes it current. On error the previous
// session stays current.
func (m *Manager) Load(ctx context.Context, paths []string) (*Session, error) {
	s, err := Open(ctx, paths, m.cfg, m.logger)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// Current returns the loaded session or *NotLoadedError.
func (m *Manager) Current() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, &NotLoadedError{}
	}
	return m.current, nil
}
