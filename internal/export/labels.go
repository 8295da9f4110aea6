package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// LabelInfo holds the data encoded into each cut label's QR code. Scanned at
// the saw, it ties a physical offcut back to the piece and join position it
// belongs to.
type LabelInfo struct {
	UnitID       string  `json:"id"`
	Label        string  `json:"label"`
	ParentLabel  string  `json:"parent_label"`
	Kind         string  `json:"kind"`
	JoinPosition string  `json:"join_position,omitempty"`
	Length       float64 `json:"length_mm"`
	Width        float64 `json:"width_mm"`
	SlabIndex    int     `json:"slab"`
	Rotated      bool    `json:"rotated"`
	X            float64 `json:"x_mm"`
	Y            float64 `json:"y_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all placed cuts, laid
// out on a standard label sheet format (Avery 5160, 3 columns x 10 rows on
// US Letter).
func ExportLabels(path string, result *model.OptimizationResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no placed cuts to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.UnitID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	label := info.Label
	if pdf.GetStringWidth(label) > textW {
		for len(label) > 0 && pdf.GetStringWidth(label+"...") > textW {
			label = label[:len(label)-1]
		}
		label += "..."
	}
	pdf.CellFormat(textW, 4.5, label, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.Length, info.Width)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	slabInfo := fmt.Sprintf("Slab %d @ (%.0f, %.0f)", info.SlabIndex, info.X, info.Y)
	pdf.CellFormat(textW, 3, slabInfo, "", 1, "L", false, 0, "")

	noteY := y + labelPadding + 12.5
	if info.JoinPosition != "" {
		pdf.SetXY(textX, noteY)
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "JOIN "+info.JoinPosition, "", 1, "L", false, 0, "")
		noteY += 3
	}
	if info.Rotated {
		pdf.SetXY(textX, noteY)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label data from an optimization result, in
// placement order.
func CollectLabelInfos(result *model.OptimizationResult) []LabelInfo {
	labels := make([]LabelInfo, 0, len(result.Placements))
	for _, pl := range result.Placements {
		labels = append(labels, LabelInfo{
			UnitID:       pl.Unit.ID,
			Label:        pl.Unit.Label,
			ParentLabel:  pl.Unit.ParentLabel,
			Kind:         string(pl.Unit.Kind),
			JoinPosition: pl.Unit.JoinPosition,
			Length:       pl.Unit.LengthMm,
			Width:        pl.Unit.WidthMm,
			SlabIndex:    pl.SlabIndex + 1,
			Rotated:      pl.Rotated,
			X:            pl.X,
			Y:            pl.Y,
		})
	}
	return labels
}
