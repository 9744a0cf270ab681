package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvWidth, "")
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LineWidth != DefaultLineWidth {
		t.Errorf("Expected width %d, got %d", DefaultLineWidth, cfg.LineWidth)
	}
	if cfg.StoryDir != filepath.Join(root, "stories") {
		t.Errorf("Unexpected story dir %s", cfg.StoryDir)
	}
	if cfg.LogDir() != filepath.Join(root, "logs") {
		t.Errorf("Unexpected log dir %s", cfg.LogDir())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	root := t.TempDir()
	data := "story_dir: tales\nline_width: 40\nstyle: dark\n"
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvWidth, "")
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LineWidth != 40 || cfg.Style != "dark" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.StoryDir != filepath.Join(root, "tales") {
		t.Errorf("Expected relative story dir resolved against root, got %s", cfg.StoryDir)
	}

	t.Setenv(EnvWidth, "55")
	cfg, err = Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LineWidth != 55 {
		t.Errorf("Expected env width 55, got %d", cfg.LineWidth)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	root := t.TempDir()

	t.Setenv(EnvWidth, "wide")
	if _, err := Load(root); !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT for non-numeric width, got %v", err)
	}

	t.Setenv(EnvWidth, "")
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte("line_width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT for malformed yaml, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	for _, width := range []int{0, -3} {
		cfg := Default(t.TempDir())
		cfg.LineWidth = width
		if err := cfg.Validate(); !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("Expected INVALID_ARGUMENT for width %d, got %v", width, err)
		}
	}

	cfg := Default(t.TempDir())
	cfg.Style = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unknown style")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv(EnvWidth, "")
	root := filepath.Join(t.TempDir(), "library")

	cfg := Default(root)
	cfg.LineWidth = 33
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LineWidth != 33 {
		t.Errorf("Expected width 33, got %d", loaded.LineWidth)
	}
}

func TestRootDirEnvOverride(t *testing.T) {
	t.Setenv(EnvDir, "/tmp/somewhere")
	dir, err := RootDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/somewhere" {
		t.Errorf("Expected env override, got %s", dir)
	}
}
