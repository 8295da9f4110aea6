package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

func TestLoadStripConfigsMissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripconfigs.json")

	configs, err := LoadStripConfigs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	std, ok := configs[model.StripStandard]
	if !ok {
		t.Fatal("expected STANDARD config")
	}
	if std.StripWidthMm != 108 {
		t.Errorf("expected standard strip width 108, got %v", std.StripWidthMm)
	}
	if _, ok := configs[model.StripWide]; !ok {
		t.Error("expected WIDE config")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestSaveLoadStripConfigsRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripconfigs.json")

	configs := model.DefaultStripConfigs()
	configs["MITRED"] = model.StripConfig{Name: "MITRED", StripWidthMm: 128, VisibleWidthMm: 80, LaminationWidthMm: 40, KerfLossMm: 8}

	if err := SaveStripConfigs(path, configs); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadStripConfigs(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	custom, ok := loaded["MITRED"]
	if !ok {
		t.Fatal("expected MITRED config to survive")
	}
	if custom.StripWidthMm != 128 {
		t.Errorf("expected strip width 128, got %v", custom.StripWidthMm)
	}
}

func TestLoadStripConfigsRestoresBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripconfigs.json")

	// A saved table with only a custom entry.
	custom := map[string]model.StripConfig{
		"MITRED": {Name: "MITRED", StripWidthMm: 128, VisibleWidthMm: 80, LaminationWidthMm: 40, KerfLossMm: 8},
	}
	if err := SaveStripConfigs(path, custom); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadStripConfigs(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := loaded[model.StripStandard]; !ok {
		t.Error("expected STANDARD to be restored")
	}
	if _, ok := loaded[model.StripWide]; !ok {
		t.Error("expected WIDE to be restored")
	}
	if _, ok := loaded["MITRED"]; !ok {
		t.Error("expected custom entry to be kept")
	}
}
