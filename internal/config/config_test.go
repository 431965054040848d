package config

import (
	"testing"

	"github.com/backmassage/renamer/internal/transform"
)

// validBase returns a config that passes Validate, for tests that break
// one field at a time.
func validBase() Config {
	cfg := DefaultConfig()
	cfg.Directory = "/media/library"
	cfg.Pattern = `S(?P<season>\d+)E(?P<episode>\d+)`
	return cfg
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/library", "/media/library"},
		{"single trailing slash", "/media/library/", "/media/library"},
		{"multiple trailing slashes", "/media/library///", "/media/library"},
		{"root path", "/", "/"},
		{"relative path", "episodes", "episodes"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing directory", func(c *Config) { c.Directory = "" }, true},
		{"missing pattern", func(c *Config) { c.Pattern = "" }, true},
		{"check mode skips directory and pattern", func(c *Config) {
			c.CheckOnly = true
			c.Directory = ""
			c.Pattern = ""
		}, false},
		{"zero depth", func(c *Config) { c.Depth = 0 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  transform.UnknownPolicy
		wantErr bool
	}{
		{"keep is valid", transform.UnknownKeep, false},
		{"empty is valid", transform.UnknownEmpty, false},
		{"blank is invalid", "", true},
		{"other is invalid", "verbatim", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			cfg.Unknown = tt.policy
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CompilesPatternAndTemplate(t *testing.T) {
	cfg := validBase()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Compiled == nil || cfg.Parsed == nil {
		t.Error("Validate should populate Compiled and Parsed")
	}

	cfg = validBase()
	cfg.Pattern = `S(?P<season>\d+`
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted an uncompilable pattern")
	}

	cfg = validBase()
	cfg.Template = "E{episode:99999999999999999999}"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted a template with an overflowing width")
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := validBase()
	cfg.DefaultSeason = "3"
	cfg.Title = "MyShow"
	cfg.Unknown = transform.UnknownEmpty

	opts := cfg.RenderOptions()
	if opts.Defaults[string(transform.SlotSeason)] != "3" {
		t.Errorf("default season = %q, want \"3\"", opts.Defaults[string(transform.SlotSeason)])
	}
	if opts.Title != "MyShow" || opts.Unknown != transform.UnknownEmpty {
		t.Errorf("opts = %+v", opts)
	}
}

func TestNormalizeFileTypes(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"plain entries", []string{"mkv", "srt"}, []string{"mkv", "srt"}},
		{"comma-joined entry", []string{"mkv,ass,srt"}, []string{"mkv", "ass", "srt"}},
		{"whitespace and empties dropped", []string{" mkv , ", ""}, []string{"mkv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeFileTypes(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("normalizeFileTypes(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("normalizeFileTypes(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}
