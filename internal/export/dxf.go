package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// DXF layer names. Saw shops route layers to different toolpaths, so slab
// outlines, main pieces, strips and text each get their own.
const (
	layerSlab   = "SLAB"
	layerPieces = "PIECES"
	layerStrips = "STRIPS"
	layerLabels = "LABELS"
)

// textHeightMm is the annotation text height in slab coordinates.
const textHeightMm = 40.0

// ExportDXF writes one DXF drawing per slab layout, laid out side by side
// with a gap between slabs. Coordinates are in mm, matching the slab's own
// coordinate space.
func ExportDXF(path string, result *model.OptimizationResult, settings model.NestSettings) error {
	if len(result.Slabs) == 0 {
		return fmt.Errorf("no slabs to export")
	}

	spec := settings.Slab
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(layerSlab, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	if _, err := d.AddLayer(layerPieces, color.Green, dxf.DefaultLineType, false); err != nil {
		return err
	}
	if _, err := d.AddLayer(layerStrips, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return err
	}
	if _, err := d.AddLayer(layerLabels, color.Yellow, dxf.DefaultLineType, false); err != nil {
		return err
	}

	gap := spec.LengthMm * 0.1
	for _, slab := range result.Slabs {
		originX := float64(slab.Index) * (spec.LengthMm + gap)
		if err := drawSlab(d, slab, spec, originX); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

func drawSlab(d *drawing.Drawing, slab model.Slab, spec model.SlabSpec, originX float64) error {
	if err := d.ChangeLayer(layerSlab); err != nil {
		return err
	}
	if err := drawRect(d, originX, 0, spec.LengthMm, spec.WidthMm); err != nil {
		return err
	}

	// Usable interior after edge trim
	trim := spec.TrimMarginMm
	if err := drawRect(d, originX+trim, trim, spec.UsableLength(), spec.UsableWidth()); err != nil {
		return err
	}

	if err := d.ChangeLayer(layerLabels); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("SLAB %d", slab.Index+1), originX, spec.WidthMm+textHeightMm, 0, textHeightMm); err != nil {
		return err
	}

	for _, pl := range slab.Placements {
		layer := layerPieces
		if pl.Unit.Kind == model.UnitLaminationStrip {
			layer = layerStrips
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}

		x := originX + trim + pl.X
		y := trim + pl.Y
		w := pl.PlacedWidth()
		h := pl.PlacedHeight()
		if err := drawRect(d, x, y, w, h); err != nil {
			return err
		}

		if w > 4*textHeightMm && h > 2*textHeightMm {
			if err := d.ChangeLayer(layerLabels); err != nil {
				return err
			}
			if _, err := d.Text(pl.Unit.Label, x+textHeightMm/2, y+h/2, 0, textHeightMm); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawRect draws an axis-aligned rectangle as four line entities, the form
// bridge-saw controllers expect.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, c := range corners {
		if _, err := d.Line(c[0], c[1], 0, c[2], c[3], 0); err != nil {
			return err
		}
	}
	return nil
}
