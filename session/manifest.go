package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Manifest records which sources the last load used, so a later process
// can rebuild the same session. It never holds respondent data.
type Manifest struct {
	SessionID string    `yaml:"session_id"`
	Sources   []string  `yaml:"sources"`
	LoadedAt  time.Time `yaml:"loaded_at"`
}

// ManifestFor describes s. Source paths are made absolute so the manifest
// still resolves from another working directory.
func ManifestFor(s *Session) Manifest {
	sources := make([]string, len(s.Sources))
	for i, p := range s.Sources {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		sources[i] = p
	}
	return Manifest{
		SessionID: s.ID.String(),
		Sources:   sources,
		LoadedAt:  s.LoadedAt,
	}
}

// SaveManifest writes m as YAML, creating parent directories.
func SaveManifest(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal session manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest. A missing file, or one listing no
// sources, is *NotLoadedError.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, &NotLoadedError{}
	}
	if err != nil {
		return m, fmt.Errorf("failed to read session manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse session manifest %s: %w", path, err)
	}
	if len(m.Sources) == 0 {
		return m, &NotLoadedError{}
	}
	return m, nil
}

// Resume returns the current session, reopening the one recorded in the
// configured manifest when nothing is loaded yet.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	if s, err := m.Current(); err == nil {
		return s, nil
	}
	mf, err := LoadManifest(m.cfg.Session.ManifestPath)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("Resuming session",
		zap.String("session", mf.SessionID),
		zap.Int("sources", len(mf.Sources)))
	return m.Load(ctx, mf.Sources)
}

// Save records the current session in the configured manifest.
func (m *Manager) Save() error {
	s, err := m.Current()
	if err != nil {
		return err
	}
	return SaveManifest(m.cfg.Session.ManifestPath, ManifestFor(s))
}

// ManifestPath is where Save writes and Resume reads.
func (m *Manager) ManifestPath() string {
	return m.cfg.Session.ManifestPath
}
