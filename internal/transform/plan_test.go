package transform

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTemplate(t *testing.T, raw string) *Template {
	t.Helper()
	tmpl, err := ParseTemplate(raw)
	require.NoError(t, err)
	return tmpl
}

func TestBuildPlan(t *testing.T) {
	re := regexp.MustCompile(`S(?P<season>\d+)E(?P<episode>\d+)`)
	tmpl := mustTemplate(t, "{title} - S{season:02}E{episode:02}")
	opts := Options{
		Defaults: map[string]string{"season": "1"},
		Title:    "MyShow",
	}

	plan, ok, err := BuildPlan(filepath.Join("media", "S1E1_video.mkv"), re, tmpl, opts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("media", "S1E1_video.mkv"), plan.OriginalPath)
	assert.Equal(t, filepath.Join("media", "MyShow - S01E01.mkv"), plan.NewPath)
	assert.False(t, plan.NeedsConfirm)
}

func TestBuildPlan_NoMatchSkips(t *testing.T) {
	re := regexp.MustCompile(`S(?P<season>\d+)E(?P<episode>\d+)`)
	tmpl := mustTemplate(t, "{title} - S{season:02}E{episode:02}")

	_, ok, err := BuildPlan("random_file.txt", re, tmpl, Options{})
	require.NoError(t, err)
	assert.False(t, ok, "a non-matching file must be skipped, never planned")
}

func TestBuildPlan_AdvisoryFlag(t *testing.T) {
	re := regexp.MustCompile(`S(?P<season>\d+)E(?P<episode>\d+)`)
	tmpl := mustTemplate(t, "S{season:02}E{episode:02}")

	plan, ok, err := BuildPlan("S0E01_video.mkv", re, tmpl, Options{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, plan.NeedsConfirm, "season 0 should raise the advisory flag")

	plan, ok, err = BuildPlan("S01E01_video.mkv", re, tmpl, Options{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, plan.NeedsConfirm)
}

func TestBuildPlan_NegativeValue(t *testing.T) {
	re := regexp.MustCompile(`S(?P<season>-?\d+)E(?P<episode>\d+)`)
	tmpl := mustTemplate(t, "S{season:02}E{episode:02}")

	_, _, err := BuildPlan("S-1E10_video.mkv", re, tmpl, Options{})
	var nve *NegativeValueError
	require.ErrorAs(t, err, &nve)
	assert.Equal(t, "season", nve.Field)
}

func TestBuildPlan_DefaultSeasonFromEpisodeOnlyName(t *testing.T) {
	re := regexp.MustCompile(`\[(?P<episode>\d+)\]`)
	tmpl := mustTemplate(t, "{title} - S{season:02}E{episode:02}")
	opts := Options{
		Defaults: map[string]string{"season": "1"},
		Title:    "Ao no Exorcist",
	}

	plan, ok, err := BuildPlan("[DBD-Raws][Ao no Exorcist][01][1080P][BDRip].mkv", re, tmpl, opts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ao no Exorcist - S01E01.mkv", filepath.Base(plan.NewPath))
}

func TestEnforceExtension(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		original string
		want     string
	}{
		{"template extension overridden", "Show.txt", "S1E1_video.MKV", "Show.mkv"},
		{"missing extension appended", "Show - S01E01", "S1E1_video.mkv", "Show - S01E01.mkv"},
		{"matching extension untouched", "Show.mkv", "S1E1_video.mkv", "Show.mkv"},
		{"matching extension keeps rendered case", "Show.MKV", "S1E1_video.mkv", "Show.MKV"},
		{"extension-free original left alone", "Show - S02E05", "S2E5", "Show - S02E05"},
		{"rendered extension kept when original has none", "Show.txt", "S2E5", "Show.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnforceExtension(tt.rendered, tt.original))
		})
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		allowList []string
		want      bool
	}{
		{"empty list accepts everything", "README", nil, true},
		{"empty list accepts media too", "a.mkv", nil, true},
		{"listed extension", "video.mkv", []string{"mkv", "ass"}, true},
		{"case insensitive match", "video.MKV", []string{"mkv"}, true},
		{"entry with leading dot", "video.mkv", []string{".mkv"}, true},
		{"unlisted extension", "video.mp4", []string{"mkv", "ass"}, false},
		{"no extension with non-empty list", "README", []string{"mkv"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(tt.path, tt.allowList))
		})
	}
}
