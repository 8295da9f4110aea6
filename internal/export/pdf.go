package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// pieceColor represents an RGB color for a placed cut unit.
type pieceColor struct {
	R, G, B int
}

var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// stripFill is the muted fill used for lamination strips so they read
// differently from main pieces on the layout.
var stripFill = pieceColor{R: 189, G: 189, B: 189}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF with one page per slab showing the cutting
// layout, followed by a summary page.
func ExportPDF(path string, result *model.OptimizationResult, settings model.NestSettings) error {
	if len(result.Slabs) == 0 {
		return fmt.Errorf("no slabs to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, slab := range result.Slabs {
		pdf.AddPage()
		renderSlabPage(pdf, slab, settings.Slab)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderSlabPage draws one slab's layout on the current page.
func renderSlabPage(pdf *fpdf.Fpdf, slab model.Slab, spec model.SlabSpec) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Slab %d (%.0f x %.0f mm)", slab.Index+1, spec.LengthMm, spec.WidthMm)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cuts: %d | Used area: %.0f mm² | Waste: %.1f%%",
		len(slab.Placements), slab.UsedArea, slab.WastePercent)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/spec.LengthMm, drawHeight/spec.WidthMm)
	canvasW := spec.LengthMm * scale
	canvasH := spec.WidthMm * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Raw slab outline (stone grey)
	pdf.SetFillColor(224, 224, 224)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Trim margin boundary (usable interior)
	trim := spec.TrimMarginMm * scale
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offsetX+trim, offsetY+trim, canvasW-2*trim, canvasH-2*trim, "D")

	mainIdx := 0
	for _, pl := range slab.Placements {
		var col pieceColor
		if pl.Unit.Kind == model.UnitLaminationStrip {
			col = stripFill
		} else {
			col = pieceColors[mainIdx%len(pieceColors)]
			mainIdx++
		}

		pw := pl.PlacedWidth() * scale
		ph := pl.PlacedHeight() * scale
		px := offsetX + trim + pl.X*scale
		py := offsetY + trim + pl.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := pl.Unit.Label
			dims := fmt.Sprintf("%.0fx%.0f", pl.Unit.LengthMm, pl.Unit.WidthMm)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, spec, scale, offsetX, offsetY, canvasW, canvasH)
	drawCutsLegend(pdf, slab, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds length and width labels outside the slab
// rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, spec model.SlabSpec, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f mm", spec.LengthMm)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f mm", spec.WidthMm)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCutsLegend renders a compact legend of placed cuts at the bottom of a
// slab page.
func drawCutsLegend(pdf *fpdf.Fpdf, slab model.Slab, startY float64) {
	if len(slab.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cuts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	mainIdx := 0
	for _, pl := range slab.Placements {
		var col pieceColor
		if pl.Unit.Kind == model.UnitLaminationStrip {
			col = stripFill
		} else {
			col = pieceColors[mainIdx%len(pieceColors)]
			mainIdx++
		}

		label := fmt.Sprintf("%s (%.0fx%.0f)", pl.Unit.Label, pl.Unit.LengthMm, pl.Unit.WidthMm)
		if pl.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result *model.OptimizationResult, settings model.NestSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Slab Nesting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Slabs Used", fmt.Sprintf("%d", result.TotalSlabs)},
		{"Pieces Nested", fmt.Sprintf("%d", result.TotalPieces)},
		{"Lamination Strips", fmt.Sprintf("%d", result.Lamination.TotalStrips)},
		{"Used Area", fmt.Sprintf("%.0f mm²", result.TotalUsedArea)},
		{"Waste", fmt.Sprintf("%.1f%%", result.WastePercent)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Slab Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 35, 50, 50}
	headers := []string{"Slab", "Dimensions", "Cuts", "Used Area", "Waste"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, slab := range result.Slabs {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", slab.Index+1),
			fmt.Sprintf("%.0f x %.0f mm", settings.Slab.LengthMm, settings.Slab.WidthMm),
			fmt.Sprintf("%d", len(slab.Placements)),
			fmt.Sprintf("%.0f mm²", slab.UsedArea),
			fmt.Sprintf("%.1f%%", slab.WastePercent),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Slab Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Strategy", settings.Strategy},
		{"Slab Size", fmt.Sprintf("%.0f x %.0f mm", settings.Slab.LengthMm, settings.Slab.WidthMm)},
		{"Kerf", fmt.Sprintf("%.1f mm", settings.Slab.KerfMm)},
		{"Edge Trim", fmt.Sprintf("%.1f mm", settings.Slab.TrimMarginMm)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SlabNest - Stone Cutting Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size matched to the rectangle being labelled.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
