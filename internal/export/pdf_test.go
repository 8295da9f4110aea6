package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

func TestExportPDF(t *testing.T) {
	result, settings := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, result, settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PDF")
	}
}

func TestExportPDFEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	err := ExportPDF(path, &model.OptimizationResult{}, model.DefaultSettings())
	if err == nil {
		t.Fatal("expected an error for an empty result")
	}
}

func TestLabelFontSize(t *testing.T) {
	if got := labelFontSize(100, 50); got != 8 {
		t.Errorf("expected 8, got %v", got)
	}
	if got := labelFontSize(100, 30); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
	if got := labelFontSize(100, 10); got != 6 {
		t.Errorf("expected 6, got %v", got)
	}
}
