package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("sled", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-seed", "abc", "-preset", "bunny-hill", "-scale", "3", "-fresh", "-set", "tree_base=5", "-set", "sampler = hash"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Seed != "abc" || cfg.Preset != "bunny-hill" || cfg.Scale != 3 || !cfg.Fresh {
		t.Fatalf("parsed config = %+v", cfg)
	}
	if cfg.Sets["tree_base"] != "5" || cfg.Sets["sampler"] != "hash" {
		t.Fatalf("overrides = %v", cfg.Sets)
	}
	if got := cfg.Sets.String(); got != "sampler=hash,tree_base=5" {
		t.Fatalf("Overrides.String() = %q", got)
	}
}

func TestOverridesRejectMalformed(t *testing.T) {
	o := Overrides{}
	for _, v := range []string{"novalue", "=5", ""} {
		if err := o.Set(v); err == nil {
			t.Fatalf("Set(%q) should fail", v)
		}
	}
}

func TestConfigResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sled.yaml")
	if err := os.WriteFile(path, []byte("viewer:\n  scale: 6\n  tps: 45\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfig()
	cfg.ConfigPath = path
	cfg.Preset = "bunny-hill"
	cfg.TPS = 20
	cfg.Sets["tree_base"] = "4"

	resolved, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Mountain.TotalLayers != 5 || resolved.Mountain.TreeBase != 4 {
		t.Fatalf("mountain = %+v", resolved.Mountain)
	}
	if resolved.Viewer.Scale != 6 || resolved.Viewer.TPS != 20 {
		t.Fatalf("viewer = %+v", resolved.Viewer)
	}

	cfg.Preset = "everest"
	if _, err := cfg.Resolve(); err == nil {
		t.Fatal("unknown preset should fail")
	}
}

func TestConfigResolvePresetFlagKeepsFileMountain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sled.yaml")
	if err := os.WriteFile(path, []byte("mountain:\n  sampler: hash\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfig()
	cfg.ConfigPath = path
	cfg.Preset = "bunny-hill"

	resolved, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Mountain.TotalLayers != 5 || resolved.Mountain.Sampler != "hash" {
		t.Fatalf("mountain = %+v, want bunny-hill with hash sampler", resolved.Mountain)
	}
}
