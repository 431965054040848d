package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/logging"
)

func testService(t *testing.T, dir string) *Service {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Directory = dir
	cfg.Pattern = `S(?P<season>\d+)E(?P<episode>\d+)`
	cfg.Title = "Show"
	cfg.Yes = true
	cfg.ColorMode = config.ColorNever
	require.NoError(t, cfg.Validate())
	log, err := logging.NewLogger(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return New(&cfg, log)
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestWithinDepth(t *testing.T) {
	dir := t.TempDir()
	svc := testService(t, dir)

	assert.True(t, svc.withinDepth(filepath.Join(dir, "a.mkv"), 1))
	assert.False(t, svc.withinDepth(filepath.Join(dir, "sub", "a.mkv"), 1))
	assert.True(t, svc.withinDepth(filepath.Join(dir, "sub", "a.mkv"), 2))
	assert.False(t, svc.withinDepth(filepath.Join(dir, "..", "a.mkv"), 5))
}

func TestProcessRenamesArrival(t *testing.T) {
	dir := t.TempDir()
	svc := testService(t, dir)
	src := filepath.Join(dir, "S1E2_video.mkv")
	touch(t, src)

	svc.process(src)

	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(dir, "Show - S01E02.mkv"))
}

func TestProcessSkipsExistingDestination(t *testing.T) {
	dir := t.TempDir()
	svc := testService(t, dir)
	src := filepath.Join(dir, "S1E2_video.mkv")
	touch(t, src)
	touch(t, filepath.Join(dir, "Show - S01E02.mkv"))

	svc.process(src)

	assert.FileExists(t, src)
}

func TestProcessAdvisoryWithoutYes(t *testing.T) {
	dir := t.TempDir()
	svc := testService(t, dir)
	svc.cfg.Yes = false
	src := filepath.Join(dir, "S0E2_video.mkv")
	touch(t, src)

	svc.process(src)

	assert.FileExists(t, src)
	assert.NoFileExists(t, filepath.Join(dir, "Show - S00E02.mkv"))
}

func TestProcessDryRun(t *testing.T) {
	dir := t.TempDir()
	svc := testService(t, dir)
	svc.cfg.DryRun = true
	src := filepath.Join(dir, "S1E2_video.mkv")
	touch(t, src)

	svc.process(src)

	assert.FileExists(t, src)
	assert.NoFileExists(t, filepath.Join(dir, "Show - S01E02.mkv"))
}
