package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/surveyq/config"
	"github.com/spektr-org/surveyq/loader"
	"github.com/spektr-org/surveyq/schema"
)

func writeSurvey(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "survey.csv")
	content := "Age,Languages\n25,Python;R\n31,Go\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Session.ManifestPath = filepath.Join(t.TempDir(), ".surveyq", "session.yaml")
	return cfg
}

func TestOpen(t *testing.T) {
	p := writeSurvey(t, t.TempDir())

	s, err := Open(context.Background(), []string{p}, testConfig(t), nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, 2, s.Table.Len())
	assert.Equal(t, []string{p}, s.Sources)
	assert.False(t, s.LoadedAt.IsZero())

	q, ok := s.Catalog.Get("Languages")
	require.True(t, ok)
	assert.Equal(t, schema.TypeMultipleChoice, q.Type())
	q, _ = s.Catalog.Get("Age")
	assert.Equal(t, schema.TypeNumeric, q.Type())
}

func TestOpenUsesClassifierConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "pipe.csv")
	require.NoError(t, os.WriteFile(p, []byte("Tools\nGit|Docker\nGit\n"), 0o644))

	cfg := testConfig(t)
	cfg.Classifier.Delimiter = "|"
	s, err := Open(context.Background(), []string{p}, cfg, nil)
	require.NoError(t, err)

	q, _ := s.Catalog.Get("Tools")
	assert.Equal(t, schema.TypeMultipleChoice, q.Type())
	assert.Equal(t, []string{"Docker", "Git"}, q.Options())
	assert.Equal(t, "|", s.Catalog.Delimiter())
}

func TestOpenMissingSource(t *testing.T) {
	_, err := Open(context.Background(), []string{"/does/not/exist.csv"}, nil, nil)
	var nf *loader.SourceNotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestManagerCurrent(t *testing.T) {
	m := NewManager(testConfig(t), nil)

	_, err := m.Current()
	var nl *NotLoadedError
	require.True(t, errors.As(err, &nl))

	p := writeSurvey(t, t.TempDir())
	first, err := m.Load(context.Background(), []string{p})
	require.NoError(t, err)

	cur, err := m.Current()
	require.NoError(t, err)
	assert.Same(t, first, cur)

	// a failed reload keeps the previous session
	_, err = m.Load(context.Background(), []string{"/does/not/exist.csv"})
	require.Error(t, err)
	cur, err = m.Current()
	require.NoError(t, err)
	assert.Same(t, first, cur)
}

func TestManagerConcurrentReads(t *testing.T) {
	m := NewManager(testConfig(t), nil)
	p := writeSurvey(t, t.TempDir())
	_, err := m.Load(context.Background(), []string{p})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := m.Current()
			assert.NoError(t, err)
			assert.Equal(t, 2, s.Table.Len())
		}()
	}
	wg.Wait()
}

func TestManifestRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	p := writeSurvey(t, t.TempDir())
	s, err := Open(context.Background(), []string{p}, cfg, nil)
	require.NoError(t, err)

	m := ManifestFor(s)
	require.NoError(t, SaveManifest(cfg.Session.ManifestPath, m))

	loaded, err := LoadManifest(cfg.Session.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, m.Sources, loaded.Sources)
	assert.Equal(t, s.ID.String(), loaded.SessionID)
	assert.True(t, m.LoadedAt.Equal(loaded.LoadedAt))

	resumed, err := NewManager(cfg, nil).Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.Table.Columns(), resumed.Table.Columns())
	assert.Equal(t, s.Table.Len(), resumed.Table.Len())
}

func TestManagerSaveThenResume(t *testing.T) {
	cfg := testConfig(t)
	p := writeSurvey(t, t.TempDir())

	first := NewManager(cfg, nil)
	var nl *NotLoadedError
	require.True(t, errors.As(first.Save(), &nl))

	s, err := first.Load(context.Background(), []string{p})
	require.NoError(t, err)
	require.NoError(t, first.Save())
	assert.FileExists(t, first.ManifestPath())

	// resuming an already loaded manager does not reopen the sources
	same, err := first.Resume(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, same)

	second := NewManager(cfg, nil)
	resumed, err := second.Resume(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, resumed.ID)
	assert.Equal(t, 2, resumed.Table.Len())

	cur, err := second.Current()
	require.NoError(t, err)
	assert.Same(t, resumed, cur)
}

func TestManifestMissing(t *testing.T) {
	cfg := testConfig(t)

	_, err := LoadManifest(cfg.Session.ManifestPath)
	var nl *NotLoadedError
	assert.True(t, errors.As(err, &nl))

	_, err = NewManager(cfg, nil).Resume(context.Background())
	assert.True(t, errors.As(err, &nl))

	require.NoError(t, SaveManifest(cfg.Session.ManifestPath, Manifest{}))
	_, err = LoadManifest(cfg.Session.ManifestPath)
	assert.True(t, errors.As(err, &nl))
}
