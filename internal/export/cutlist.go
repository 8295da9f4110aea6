// Package export renders optimization results to the file formats the
// workshop consumes: delimited cut lists, PDF layout sheets, Excel workbooks,
// DXF drawings and QR part labels.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// cutListHeader is the column layout of the delimited cut list.
var cutListHeader = []string{
	"Slab", "Piece ID", "Piece Label", "Type", "Parent Label",
	"Width (mm)", "Height (mm)", "X (mm)", "Y (mm)", "Rotated",
}

// WriteCutList writes the cut list for one optimization result as delimited
// text. Rows follow the result's placement order, so each parent's main
// pieces come before its lamination strips. A summary block and a lamination
// block follow the placement rows.
func WriteCutList(w io.Writer, result *model.OptimizationResult, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(cutListHeader); err != nil {
		return err
	}
	for _, pl := range result.Placements {
		row := []string{
			strconv.Itoa(pl.SlabIndex + 1),
			pl.Unit.ID,
			pl.Unit.Label,
			unitTypeName(pl.Unit.Kind),
			pl.Unit.ParentLabel,
			fmt.Sprintf("%.0f", pl.PlacedWidth()),
			fmt.Sprintf("%.0f", pl.PlacedHeight()),
			fmt.Sprintf("%.0f", pl.X),
			fmt.Sprintf("%.0f", pl.Y),
			yesNo(pl.Rotated),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	blank := make([]string, len(cutListHeader))
	if err := cw.Write(blank); err != nil {
		return err
	}

	summary := [][2]string{
		{"Total Slabs", strconv.Itoa(result.TotalSlabs)},
		{"Total Pieces", strconv.Itoa(result.TotalPieces)},
		{"Used Area (mm2)", fmt.Sprintf("%.0f", result.TotalUsedArea)},
		{"Waste Area (mm2)", fmt.Sprintf("%.0f", result.TotalWasteArea)},
		{"Waste", fmt.Sprintf("%.1f%%", result.WastePercent)},
	}
	if err := cw.Write([]string{"Summary"}); err != nil {
		return err
	}
	for _, item := range summary {
		if err := cw.Write([]string{item[0], item[1]}); err != nil {
			return err
		}
	}

	if result.Lamination.TotalStrips > 0 {
		if err := cw.Write([]string{"Lamination"}); err != nil {
			return err
		}
		if err := cw.Write([]string{"Total Strips", strconv.Itoa(result.Lamination.TotalStrips)}); err != nil {
			return err
		}
		if err := cw.Write([]string{"Strip Area (mm2)", fmt.Sprintf("%.0f", result.Lamination.TotalStripArea)}); err != nil {
			return err
		}
		for _, group := range result.Lamination.StripsByParent {
			for _, s := range group.Strips {
				row := []string{
					group.ParentLabel,
					s.Edge,
					fmt.Sprintf("%.0f", s.LengthMm),
					fmt.Sprintf("%.0f", s.WidthMm),
					strconv.Itoa(s.SlabIndex + 1),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCutList writes the cut list to a file, comma-delimited.
func ExportCutList(path string, result *model.OptimizationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCutList(f, result, ','); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func unitTypeName(kind model.UnitKind) string {
	if kind == model.UnitLaminationStrip {
		return "Lamination"
	}
	return "Main"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
