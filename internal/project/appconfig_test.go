package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

func TestLoadAppConfigMissingFile(t *testing.T) {
	config, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if config.DefaultStrategy != defaults.DefaultStrategy {
		t.Errorf("expected default strategy %q, got %q", defaults.DefaultStrategy, config.DefaultStrategy)
	}
	if config.DefaultSlabLength != defaults.DefaultSlabLength {
		t.Errorf("expected default slab length %v, got %v", defaults.DefaultSlabLength, config.DefaultSlabLength)
	}
}

func TestSaveLoadAppConfigRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config := model.DefaultAppConfig()
	config.DefaultKerfWidth = 4
	config.AddRecentJob("/jobs/kitchen.json")
	config.AddRecentJob("/jobs/bathroom.json")

	if err := SaveAppConfig(path, config); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.DefaultKerfWidth != 4 {
		t.Errorf("expected kerf 4, got %v", loaded.DefaultKerfWidth)
	}
	if len(loaded.RecentJobs) != 2 || loaded.RecentJobs[0] != "/jobs/bathroom.json" {
		t.Errorf("unexpected recent jobs: %v", loaded.RecentJobs)
	}
}

func TestLoadAppConfigNilRecentJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_strategy":"genetic"}`), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if config.DefaultStrategy != "genetic" {
		t.Errorf("expected genetic strategy, got %q", config.DefaultStrategy)
	}
	if config.RecentJobs == nil {
		t.Error("expected recent jobs to be initialized")
	}
}
