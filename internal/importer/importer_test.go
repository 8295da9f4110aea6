package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Length,Width,Thickness\nBench,2400,600,20\nIsland,1800,900,20\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Length;Width;Thickness\nBench;2400;600;20\nIsland;1800;900;20\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tLength\tWidth\nBench\t2400\t600\nIsland\t1800\t900\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Length", "Width", "Thickness", "Qty", "Grain", "Front", "Back", "Left", "Right"}
	mapping, hasHeader := DetectColumns(row)

	if !hasHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Thickness != 3 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
	if mapping.Quantity != 4 || mapping.Grain != 5 {
		t.Errorf("unexpected quantity/grain mapping: %+v", mapping)
	}
	for i, side := range model.EdgeSides {
		if mapping.Edges[side] != 6+i {
			t.Errorf("expected %s edge at column %d, got %d", side, 6+i, mapping.Edges[side])
		}
	}
}

func TestDetectColumns_CaseInsensitiveAliases(t *testing.T) {
	row := []string{"NAME", "len", "depth", "MM"}
	mapping, hasHeader := DetectColumns(row)

	if !hasHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Thickness != 3 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Bench", "2400", "600", "20"}
	mapping, hasHeader := DetectColumns(row)

	if hasHeader {
		t.Fatal("did not expect header")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Thickness != 3 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── Import Tests ──────────────────────────────────────────

func TestImportCSVFromReader_Basic(t *testing.T) {
	csv := "Label,Length,Width,Thickness\nBench,2400,600,20\nIsland,1800,900,20\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	p := result.Pieces[0]
	if p.Label != "Bench" || p.LengthMm != 2400 || p.WidthMm != 600 || p.ThicknessMm != 20 {
		t.Errorf("unexpected piece: %+v", p)
	}
	if p.ID == "" || p.ID == result.Pieces[1].ID {
		t.Error("pieces must get unique ids")
	}
}

func TestImportCSVFromReader_Edges(t *testing.T) {
	csv := "Label,Length,Width,Front,Back,Left,Right\n" +
		"Bench,2400,600,laminated,-,wide,none\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}

	p := result.Pieces[0]
	front, ok := p.Edges[model.EdgeFront]
	if !ok || !front.Laminated || front.StripConfig != model.StripStandard {
		t.Errorf("expected laminated front edge, got %+v", front)
	}
	left, ok := p.Edges[model.EdgeLeft]
	if !ok || left.StripConfig != model.StripWide {
		t.Errorf("expected wide left edge, got %+v", left)
	}
	if _, ok := p.Edges[model.EdgeBack]; ok {
		t.Error("dash edge must stay raw")
	}
	if _, ok := p.Edges[model.EdgeRight]; ok {
		t.Error("none edge must stay raw")
	}
}

func TestImportCSVFromReader_QuantityExpansion(t *testing.T) {
	csv := "Label,Length,Width,Qty\nShelf,900,300,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Pieces) != 3 {
		t.Fatalf("expected 3 pieces, got %d", len(result.Pieces))
	}
	if result.Pieces[0].Label != "Shelf #1" || result.Pieces[2].Label != "Shelf #3" {
		t.Errorf("unexpected labels: %q, %q", result.Pieces[0].Label, result.Pieces[2].Label)
	}
}

func TestImportCSVFromReader_GrainMatch(t *testing.T) {
	csv := "Label,Length,Width,Grain\nVeined,2400,600,yes\nPlain,1800,600,no\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	if !result.Pieces[0].GrainMatch {
		t.Error("expected grain match on first piece")
	}
	if result.Pieces[1].GrainMatch {
		t.Error("did not expect grain match on second piece")
	}
}

func TestImportCSVFromReader_DefaultThickness(t *testing.T) {
	csv := "Label,Length,Width\nBench,2400,600\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	if result.Pieces[0].ThicknessMm != defaultThicknessMm {
		t.Errorf("expected default thickness, got %f", result.Pieces[0].ThicknessMm)
	}
}

func TestImportCSVFromReader_BadRows(t *testing.T) {
	csv := "Label,Length,Width\nGood,2400,600\nBad,abc,600\nNegative,-5,600\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_UnknownEdgeWarning(t *testing.T) {
	csv := "Label,Length,Width,Front\nBench,2400,600,bevel\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "bevel") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about unknown edge finish, got %v", result.Warnings)
	}
}

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pieces.csv")
	content := "Label;Length;Width;Thickness\nBench;2400;600;20\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}

	// Semicolon file should produce a delimiter warning
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for an empty file")
	}
}

func TestImportExcel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pieces.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Label", "Length", "Width", "Thickness", "Front"},
		{"Bench", 2400, 600, 20, "laminated"},
		{"Island", 1800, 900, 20, ""},
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	if !result.Pieces[0].Edges[model.EdgeFront].Laminated {
		t.Error("expected laminated front edge on first piece")
	}
}
