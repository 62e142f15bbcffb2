package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/pkg/adapters/sqlite"
	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Seen.FilePath = filepath.Join(t.TempDir(), "seen.json")
	return cfg
}

func clicks(n int) *strings.Reader {
	return strings.NewReader(strings.Repeat("\n", n))
}

func TestRunTour_CompletesAndRemembers(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Autostart = true
	ctx := context.Background()

	var out bytes.Buffer
	err := RunTour(ctx, RunOptions{Config: cfg, In: clicks(20), Out: &out})
	require.NoError(t, err)

	steps, err := catalog.Default().Build(domain.ModeLabels)
	require.NoError(t, err)
	for _, s := range steps {
		assert.Contains(t, out.String(), s.Message)
	}
	assert.Contains(t, out.String(), "Walkthrough complete.")
	assert.NotContains(t, out.String(), "Press Enter to begin.")

	out.Reset()
	require.NoError(t, RunTour(ctx, RunOptions{Config: cfg, In: clicks(20), Out: &out}))
	assert.Contains(t, out.String(), "already seen")
	assert.NotContains(t, out.String(), steps[0].Message)

	out.Reset()
	require.NoError(t, RunTour(ctx, RunOptions{Config: cfg, Force: true, In: clicks(20), Out: &out}))
	assert.Contains(t, out.String(), "Walkthrough complete.")
}

func TestRunTour_ManualStartAndMissingTargets(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory
	cfg.Mode = "points"

	var out bytes.Buffer
	err := RunTour(context.Background(), RunOptions{
		Config:  cfg,
		Missing: []string{"tools-container", "unsure-button"},
		In:      clicks(20),
		Out:     &out,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Press Enter to begin.")
	assert.NotContains(t, out.String(), "#tools-container")
	assert.NotContains(t, out.String(), "Not sure?")
	assert.Contains(t, out.String(), "Then, click into the image to put a point at the given position.")
	assert.Contains(t, out.String(), "Walkthrough complete.")
}

func TestRunTour_InputClosedEarly(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory

	var out bytes.Buffer
	require.NoError(t, RunTour(context.Background(), RunOptions{Config: cfg, In: clicks(2), Out: &out}))
	assert.Contains(t, out.String(), "Input closed")
	assert.NotContains(t, out.String(), "Walkthrough complete.")
}

func TestRunTour_UnknownMode(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory
	cfg.Mode = "polygons"

	err := RunTour(context.Background(), RunOptions{Config: cfg, In: clicks(1), Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestOpenSeenStore(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default().Seen
			cfg.Backend = backend
			cfg.FilePath = filepath.Join(t.TempDir(), "seen.json")
			cfg.SQLitePath = filepath.Join(t.TempDir(), "seen.db")

			store, closeStore, err := OpenSeenStore(context.Background(), cfg)
			require.NoError(t, err)
			require.NoError(t, store.MarkSeen(context.Background(), "k", 0))
			assert.NoError(t, closeStore())
		})
	}

	_, closeStore, err := OpenSeenStore(context.Background(), config.SeenConfig{Backend: "etcd"})
	assert.Error(t, err)
	assert.NotNil(t, closeStore)
}

func TestPresentTargets(t *testing.T) {
	all := presentTargets(catalog.Default(), nil)
	assert.Len(t, all, 9)

	some := presentTargets(catalog.Default(), []string{"gallery"})
	assert.Len(t, some, 8)
	assert.NotContains(t, some, domain.TargetGallery)
}

func TestListSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = "boundingBoxes"

	var out bytes.Buffer
	require.NoError(t, ListSteps(&out, cfg, true))
	var steps []domain.Step
	require.NoError(t, json.Unmarshal(out.Bytes(), &steps))
	assert.Len(t, steps, 11)

	out.Reset()
	require.NoError(t, ListSteps(&out, cfg, false))
	assert.Equal(t, 11, strings.Count(out.String(), "\n"))

	cfg.Mode = "polygons"
	assert.ErrorIs(t, ListSteps(&out, cfg, false), domain.ErrUnknownMode)
}

func TestResetSeen(t *testing.T) {
	cfg := fileConfig(t)
	ctx := context.Background()

	store, _, err := OpenSeenStore(ctx, cfg.Seen)
	require.NoError(t, err)
	require.NoError(t, store.MarkSeen(ctx, "skipTutorial:alice", 0))

	var out bytes.Buffer
	require.NoError(t, ResetSeen(ctx, &out, cfg, "alice"))
	assert.Contains(t, out.String(), "skipTutorial:alice")

	seen, err := store.Seen(ctx, "skipTutorial:alice")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestNewHandler(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory

	h, closeStore, err := NewHandler(context.Background(), ServeOptions{Config: cfg})
	require.NoError(t, err)
	defer closeStore()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/tours", strings.NewReader(`{"mode":"labels","targets":["gallery"],"autostart":true}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `walkthrough_steps_shown_total{mode="labels",target="gallery"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestSignalContext_Cancel(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
	assert.Nil(t, signalOf(sc))
}

func TestSignalContext_Interrupt(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.interrupt(syscall.SIGTERM)
	<-sc.Done()
	assert.Equal(t, syscall.SIGTERM, sc.Signal())
	assert.Equal(t, syscall.SIGTERM, signalOf(sc))
	assert.Nil(t, signalOf(context.Background()))
}

// triggerWriter runs fire once the output contains after.
type triggerWriter struct {
	bytes.Buffer
	after string
	fire  func()
	once  sync.Once
}

func (w *triggerWriter) Write(p []byte) (int, error) {
	n, err := w.Buffer.Write(p)
	if strings.Contains(w.Buffer.String(), w.after) {
		w.once.Do(w.fire)
	}
	return n, err
}

// idleInput never delivers a line until the test ends.
func idleInput(t *testing.T) io.Reader {
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	return r
}

func TestRunTour_InterruptedBeforeFirstStep(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()
	out := &triggerWriter{after: "Press Enter to begin.", fire: func() { sc.interrupt(os.Interrupt) }}

	require.NoError(t, RunTour(sc, RunOptions{Config: cfg, In: idleInput(t), Out: out}))
	assert.Contains(t, out.String(), "Interrupted (interrupt) before the first step.")
	assert.NotContains(t, out.String(), "Walkthrough complete.")
}

func TestRunTour_InterruptedMidTour(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory
	cfg.Autostart = true

	steps, err := catalog.Default().Build(domain.ModeLabels)
	require.NoError(t, err)

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()
	out := &triggerWriter{after: steps[0].Message, fire: func() { sc.interrupt(syscall.SIGTERM) }}

	require.NoError(t, RunTour(sc, RunOptions{Config: cfg, In: idleInput(t), Out: out}))
	assert.Contains(t, out.String(), "Interrupted (terminated) at step 1 of 11.")
}

func TestRunTour_CancelledWithoutSignal(t *testing.T) {
	cfg := config.Default()
	cfg.Seen.Backend = config.BackendMemory

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &triggerWriter{after: "Press Enter to begin.", fire: cancel}

	err := RunTour(ctx, RunOptions{Config: cfg, In: idleInput(t), Out: out})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "Interrupted")
}

func TestOpenSeenStore_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	cfg := config.Default().Seen
	cfg.Backend = config.BackendRedis
	cfg.RedisAddr = mr.Addr()

	store, closeStore, err := OpenSeenStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, store.MarkSeen(context.Background(), "skipTutorial", time.Hour))
	assert.True(t, mr.Exists("walkthrough:seen:skipTutorial"))
	require.NoError(t, closeStore())

	mr.Close()
	_, closeStore, err = OpenSeenStore(context.Background(), cfg)
	assert.ErrorContains(t, err, "error connecting to redis")
	assert.NotNil(t, closeStore)
}

func TestOpenSeenStore_SQLitePrunesExpired(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default().Seen
	cfg.Backend = config.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "seen.db")

	seed, err := sqlite.Open(cfg.SQLitePath)
	require.NoError(t, err)
	require.NoError(t, seed.MarkSeen(ctx, "old", time.Nanosecond))
	require.NoError(t, seed.MarkSeen(ctx, "keep", 0))
	require.NoError(t, seed.Close())
	time.Sleep(time.Millisecond)

	_, closeStore, err := OpenSeenStore(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, closeStore())

	check, err := sqlite.Open(cfg.SQLitePath)
	require.NoError(t, err)
	defer check.Close()
	n, err := check.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "expired flag already removed on open")
	seen, err := check.Seen(ctx, "keep")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestCreateServerLogger(t *testing.T) {
	assert.IsType(t, &slog.JSONHandler{}, createServerLogger(false, config.LogFormatJSON).Handler())
	assert.IsType(t, &slog.TextHandler{}, createServerLogger(false, config.LogFormatText).Handler())
	assert.True(t, createServerLogger(true, config.LogFormatText).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, createServerLogger(false, config.LogFormatJSON).Enabled(context.Background(), slog.LevelDebug))
}
