package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sled-mountain/internal/mountain"
	"sled-mountain/pkg/core"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sled.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Mountain != mountain.DefaultConfig() {
		t.Fatalf("Mountain = %+v, want defaults", cfg.Mountain)
	}
	if cfg.StatePath != DefaultStatePath {
		t.Fatalf("StatePath = %q, want %q", cfg.StatePath, DefaultStatePath)
	}
}

func TestLoadOverridesOnTopOfPreset(t *testing.T) {
	path := writeFile(t, `
preset: alpine
mountain:
  tree_base: 50
  sampler: hash
viewer:
  scale: 2
state_path: runs/state.yaml
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	alpine, _ := mountain.Preset("alpine")
	if cfg.Mountain.TotalLayers != alpine.TotalLayers {
		t.Fatalf("TotalLayers = %d, want alpine's %d", cfg.Mountain.TotalLayers, alpine.TotalLayers)
	}
	if cfg.Mountain.TreeBase != 50 {
		t.Fatalf("TreeBase = %d, want 50", cfg.Mountain.TreeBase)
	}
	if cfg.Mountain.Sampler != core.SamplerHash {
		t.Fatalf("Sampler = %q, want hash", cfg.Mountain.Sampler)
	}
	if cfg.Viewer.Scale != 2 || cfg.Viewer.TPS != 30 {
		t.Fatalf("Viewer = %+v, want scale 2 and default tps", cfg.Viewer)
	}
	if cfg.StatePath != "runs/state.yaml" {
		t.Fatalf("StatePath = %q", cfg.StatePath)
	}
}

func TestLoadRejectsInvalidConfigurations(t *testing.T) {
	tests := map[string]string{
		"unknown preset": "preset: everest\n",
		"bad yaml":       "mountain: [1, 2\n",
		"no layers":      "mountain:\n  total_layers: 0\n",
		"bad sampler":    "mountain:\n  sampler: perlin\n",
	}
	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, contents)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}

	_, err := Load(writeFile(t, "mountain:\n  shrink_factor: 2\n"))
	if !errors.Is(err, mountain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sled.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault returned error: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != Default() {
		t.Fatalf("round-tripped config = %+v, want %+v", *cfg, Default())
	}
}

func TestLoadPresetKeepsFileMountainKeys(t *testing.T) {
	path := writeFile(t, `
preset: alpine
mountain:
  sampler: hash
  tree_base: 7
`)
	cfg, err := LoadPreset(path, "bunny-hill")
	if err != nil {
		t.Fatalf("LoadPreset returned error: %v", err)
	}
	bunny, _ := mountain.Preset("bunny-hill")
	if cfg.Preset != "bunny-hill" || cfg.Mountain.TotalLayers != bunny.TotalLayers {
		t.Fatalf("preset = %q with %d layers, want bunny-hill's %d", cfg.Preset, cfg.Mountain.TotalLayers, bunny.TotalLayers)
	}
	if cfg.Mountain.Sampler != core.SamplerHash || cfg.Mountain.TreeBase != 7 {
		t.Fatalf("file keys lost: sampler %q tree_base %d", cfg.Mountain.Sampler, cfg.Mountain.TreeBase)
	}
}

func TestLoadPresetWithoutFile(t *testing.T) {
	cfg, err := LoadPreset("", "alpine")
	if err != nil {
		t.Fatalf("LoadPreset returned error: %v", err)
	}
	alpine, _ := mountain.Preset("alpine")
	if cfg.Preset != "alpine" || cfg.Mountain != alpine {
		t.Fatalf("config = %+v, want alpine preset", cfg)
	}
	if _, err := LoadPreset("", "everest"); err == nil {
		t.Fatal("unknown preset should fail")
	}
}
