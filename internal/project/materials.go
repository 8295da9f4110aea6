package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// Material describes one stone product: the slab size it is supplied in and
// its price. Slab dimensions vary by supplier and category, so the nesting
// settings for a job are derived from its material.
type Material struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"` // engineered, granite, porcelain
	SlabLengthMm float64 `json:"slab_length_mm"`
	SlabWidthMm  float64 `json:"slab_width_mm"`
	ThicknessMm  float64 `json:"thickness_mm"`
	PricePerSlab float64 `json:"price_per_slab"`
}

// MaterialCatalog is the list of materials available for quoting.
type MaterialCatalog struct {
	Materials []Material `json:"materials"`
}

// DefaultMaterialCatalog returns a starter catalog of common slab formats.
func DefaultMaterialCatalog() MaterialCatalog {
	return MaterialCatalog{
		Materials: []Material{
			{ID: "eng-3200", Name: "Engineered Stone 3200", Category: "engineered", SlabLengthMm: 3200, SlabWidthMm: 1600, ThicknessMm: 20, PricePerSlab: 850},
			{ID: "eng-3000", Name: "Engineered Stone 3000", Category: "engineered", SlabLengthMm: 3000, SlabWidthMm: 1400, ThicknessMm: 20, PricePerSlab: 700},
			{ID: "granite-2700", Name: "Granite 2700", Category: "granite", SlabLengthMm: 2700, SlabWidthMm: 1800, ThicknessMm: 30, PricePerSlab: 1200},
			{ID: "porcelain-3200", Name: "Porcelain 3200", Category: "porcelain", SlabLengthMm: 3200, SlabWidthMm: 1600, ThicknessMm: 12, PricePerSlab: 950},
		},
	}
}

// Find returns the material with the given id.
func (c MaterialCatalog) Find(id string) (Material, bool) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

// SlabFor builds a SlabSpec for the given material id using the supplied
// kerf and trim margin.
func (c MaterialCatalog) SlabFor(id string, kerfMm, trimMarginMm float64) (model.SlabSpec, error) {
	m, ok := c.Find(id)
	if !ok {
		return model.SlabSpec{}, fmt.Errorf("unknown material %q", id)
	}
	return model.SlabSpec{
		LengthMm:     m.SlabLengthMm,
		WidthMm:      m.SlabWidthMm,
		KerfMm:       kerfMm,
		TrimMarginMm: trimMarginMm,
	}, nil
}

// DefaultMaterialsPath returns the default file path for the material
// catalog, at ~/.slabnest/materials.json.
func DefaultMaterialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".slabnest", "materials.json"), nil
}

// SaveMaterials writes the catalog to the specified JSON file, creating
// parent directories if they do not exist.
func SaveMaterials(path string, catalog MaterialCatalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMaterials reads the catalog from the specified JSON file. If the file
// does not exist, it returns the default catalog and saves it.
func LoadMaterials(path string) (MaterialCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			catalog := DefaultMaterialCatalog()
			if saveErr := SaveMaterials(path, catalog); saveErr != nil {
				return catalog, saveErr
			}
			return catalog, nil
		}
		return MaterialCatalog{}, err
	}
	var catalog MaterialCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return MaterialCatalog{}, err
	}
	return catalog, nil
}

// ImportMaterials imports a catalog from a user-specified JSON file, merging
// it with the existing catalog. Duplicate IDs are skipped.
func ImportMaterials(path string, existing MaterialCatalog) (MaterialCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported MaterialCatalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Materials))
	for _, m := range existing.Materials {
		ids[m.ID] = true
	}
	for _, m := range imported.Materials {
		if !ids[m.ID] {
			existing.Materials = append(existing.Materials, m)
			ids[m.ID] = true
		}
	}

	return existing, nil
}
