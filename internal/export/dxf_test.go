package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

func TestExportDXF(t *testing.T) {
	result, settings := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "layout.dxf")

	if err := ExportDXF(path, result, settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty DXF")
	}

	content := string(data)
	for _, layer := range []string{layerSlab, layerPieces, layerLabels} {
		if !strings.Contains(content, layer) {
			t.Errorf("expected layer %q in output", layer)
		}
	}
}

func TestExportDXFEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")

	err := ExportDXF(path, &model.OptimizationResult{}, model.DefaultSettings())
	if err == nil {
		t.Fatal("expected an error for an empty result")
	}
}
