package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Probe.Concurrency != 10 {
		t.Errorf("expected default concurrency 10, got %d", cfg.Probe.Concurrency)
	}
	if cfg.Probe.Timeout != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.Probe.Timeout)
	}
	if cfg.Probe.UserAgent == "" {
		t.Error("expected a default user agent")
	}
	if cfg.Analyzer.MaxFeatures != 100 {
		t.Errorf("expected default max features 100, got %d", cfg.Analyzer.MaxFeatures)
	}
	if cfg.Organizer.MaxPerFolder != 50 {
		t.Errorf("expected default max per folder 50, got %d", cfg.Organizer.MaxPerFolder)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := []byte(`probe:
  concurrency: 20
  timeout: 2s
  exclude_domains:
    - private.example
    - internal.example
analyzer:
  cluster_eps: 0.4
organizer:
  max_per_folder: 25
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Probe.Concurrency != 20 {
		t.Errorf("expected concurrency 20, got %d", cfg.Probe.Concurrency)
	}
	if cfg.Probe.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", cfg.Probe.Timeout)
	}
	want := []string{"private.example", "internal.example"}
	if !reflect.DeepEqual(cfg.Probe.ExcludeDomains, want) {
		t.Errorf("expected exclude domains %v, got %v", want, cfg.Probe.ExcludeDomains)
	}
	if cfg.Analyzer.ClusterEps != 0.4 {
		t.Errorf("expected cluster eps 0.4, got %v", cfg.Analyzer.ClusterEps)
	}
	if cfg.Organizer.MaxPerFolder != 25 {
		t.Errorf("expected max per folder 25, got %d", cfg.Organizer.MaxPerFolder)
	}

	// Values not in the file keep their defaults.
	if cfg.Probe.UserAgent == "" {
		t.Error("expected default user agent to survive a partial file")
	}
	if cfg.Analyzer.MinCategorySize != 2 {
		t.Errorf("expected default min category size 2, got %d", cfg.Analyzer.MinCategorySize)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := []byte("probe:\n  concurrency: 20\n")
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("BMORG_PROBE_CONCURRENCY", "33")
	t.Setenv("BMORG_ORGANIZER_MAX_PER_FOLDER", "77")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Probe.Concurrency != 33 {
		t.Errorf("expected concurrency 33 from env, got %d", cfg.Probe.Concurrency)
	}
	if cfg.Organizer.MaxPerFolder != 77 {
		t.Errorf("expected max per folder 77 from env, got %d", cfg.Organizer.MaxPerFolder)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		section string
	}{
		{
			name:    "negative concurrency",
			content: "probe:\n  concurrency: -1\n",
			section: "probe",
		},
		{
			name:    "timeout too small",
			content: "probe:\n  timeout: 1ms\n",
			section: "probe",
		},
		{
			name:    "cluster eps out of range",
			content: "analyzer:\n  cluster_eps: 3.0\n",
			section: "analyzer",
		},
		{
			name:    "zero max per folder",
			content: "organizer:\n  max_per_folder: 0\n",
			section: "organizer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")

			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("expected error for invalid config, got nil")
			}
			if !strings.Contains(err.Error(), tt.section) {
				t.Errorf("expected error to name section %q, got: %v", tt.section, err)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := Default()
	cfg.Probe.Concurrency = 7
	cfg.Probe.Timeout = 3 * time.Second
	cfg.Probe.ExcludeDomains = []string{"private.example"}
	cfg.Organizer.MaxPerFolder = 30

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Probe.Concurrency != 7 {
		t.Errorf("expected concurrency 7, got %d", loaded.Probe.Concurrency)
	}
	if loaded.Probe.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", loaded.Probe.Timeout)
	}
	if !reflect.DeepEqual(loaded.Probe.ExcludeDomains, cfg.Probe.ExcludeDomains) {
		t.Errorf("expected exclude domains %v, got %v",
			cfg.Probe.ExcludeDomains, loaded.Probe.ExcludeDomains)
	}
	if loaded.Organizer.MaxPerFolder != 30 {
		t.Errorf("expected max per folder 30, got %d", loaded.Organizer.MaxPerFolder)
	}
	if loaded.Analyzer != cfg.Analyzer {
		t.Errorf("analyzer settings changed in round trip: %+v vs %+v",
			loaded.Analyzer, cfg.Analyzer)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "bmorg", "config.yaml")) {
		t.Errorf("unexpected default path: %s", path)
	}
}
