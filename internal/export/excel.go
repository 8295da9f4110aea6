package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// ExportExcel writes the optimization result as a workbook with three
// sheets: the cut list, a per-slab breakdown, and the lamination strips.
func ExportExcel(path string, result *model.OptimizationResult, settings model.NestSettings) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeCutListSheet(f, headerStyle, result); err != nil {
		return err
	}
	if err := writeSlabsSheet(f, headerStyle, result, settings); err != nil {
		return err
	}
	if err := writeLaminationSheet(f, headerStyle, result); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	return f.SaveAs(path)
}

func writeCutListSheet(f *excelize.File, headerStyle int, result *model.OptimizationResult) error {
	const sheet = "Cut List"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := writeHeaderRow(f, sheet, headerStyle, cutListHeader); err != nil {
		return err
	}

	for i, pl := range result.Placements {
		row := []interface{}{
			pl.SlabIndex + 1,
			pl.Unit.ID,
			pl.Unit.Label,
			unitTypeName(pl.Unit.Kind),
			pl.Unit.ParentLabel,
			pl.PlacedWidth(),
			pl.PlacedHeight(),
			pl.X,
			pl.Y,
			yesNo(pl.Rotated),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSlabsSheet(f *excelize.File, headerStyle int, result *model.OptimizationResult, settings model.NestSettings) error {
	const sheet = "Slabs"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Slab", "Length (mm)", "Width (mm)", "Cuts", "Used Area (mm2)", "Waste Area (mm2)", "Waste (%)"}
	if err := writeHeaderRow(f, sheet, headerStyle, headers); err != nil {
		return err
	}

	for i, slab := range result.Slabs {
		row := []interface{}{
			slab.Index + 1,
			settings.Slab.LengthMm,
			settings.Slab.WidthMm,
			len(slab.Placements),
			slab.UsedArea,
			slab.WasteArea,
			slab.WastePercent,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	totals := []interface{}{
		"Total", nil, nil,
		len(result.Placements),
		result.TotalUsedArea,
		result.TotalWasteArea,
		result.WastePercent,
	}
	return writeRow(f, sheet, len(result.Slabs)+2, totals)
}

func writeLaminationSheet(f *excelize.File, headerStyle int, result *model.OptimizationResult) error {
	const sheet = "Lamination"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Parent Piece", "Edge", "Length (mm)", "Width (mm)", "Slab"}
	if err := writeHeaderRow(f, sheet, headerStyle, headers); err != nil {
		return err
	}

	rowNum := 2
	for _, group := range result.Lamination.StripsByParent {
		for _, s := range group.Strips {
			row := []interface{}{
				group.ParentLabel,
				s.Edge,
				s.LengthMm,
				s.WidthMm,
				s.SlabIndex + 1,
			}
			if err := writeRow(f, sheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, style int, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
