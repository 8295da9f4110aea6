// Package importer provides CSV and Excel import for quoted piece lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Grain     int
	Edges     map[model.EdgeSide]int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"label":     {"label", "name", "piece", "piece name", "description", "desc", "item", "benchtop"},
	"length":    {"length", "len", "l", "x"},
	"width":     {"width", "w", "depth", "d", "y"},
	"thickness": {"thickness", "thick", "t", "mm"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs"},
	"grain":     {"grain", "grain match", "grainmatch", "vein", "vein match", "bookmatch"},
	"front":     {"front", "front edge", "edge front"},
	"back":      {"back", "back edge", "edge back"},
	"left":      {"left", "left edge", "edge left"},
	"right":     {"right", "right edge", "edge right"},
}

// edgeRoles maps header roles to edge sides.
var edgeRoles = map[string]model.EdgeSide{
	"front": model.EdgeFront,
	"back":  model.EdgeBack,
	"left":  model.EdgeLeft,
	"right": model.EdgeRight,
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// that produces the most consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against known aliases. Returns the mapping and true if
// a header was detected, or a default positional mapping and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:     -1,
		Length:    -1,
		Width:     -1,
		Thickness: -1,
		Quantity:  -1,
		Grain:     -1,
		Edges:     map[model.EdgeSide]int{},
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if side, ok := edgeRoles[role]; ok {
					if _, seen := mapping.Edges[side]; !seen {
						mapping.Edges[side] = i
					}
					continue
				}
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "thickness":
					if mapping.Thickness == -1 {
						mapping.Thickness = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "grain":
					if mapping.Grain == -1 {
						mapping.Grain = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: Label, Length, Width, Thickness
		return ColumnMapping{
			Label:     0,
			Length:    1,
			Width:     2,
			Thickness: 3,
			Quantity:  -1,
			Grain:     -1,
			Edges:     map[model.EdgeSide]int{},
		}, false
	}

	return mapping, true
}

// parseEdge converts an edge finish cell to an EdgeFinish. Returns the
// finish and whether the string was recognized.
func parseEdge(s string) (model.EdgeFinish, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no", "n", "-", "raw":
		return model.EdgeFinish{}, true
	case "laminated", "standard", "std", "yes", "y":
		return model.EdgeFinish{Laminated: true, StripConfig: model.StripStandard}, true
	case "wide", "waterfall":
		return model.EdgeFinish{Laminated: true, StripConfig: model.StripWide}, true
	default:
		return model.EdgeFinish{}, false
	}
}

// parseBool converts a yes/no style cell to a bool.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// defaultThicknessMm is applied when the thickness column is absent or empty.
const defaultThicknessMm = 20.0

// parseRow extracts pieces from a row using the given column mapping. The
// quantity column expands into that many copies of the piece. Returns the
// pieces, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) ([]model.Piece, string, []string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Piece %d", pieceCount+1)
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return nil, fmt.Sprintf("%s: Missing length value", rowLabel), nil
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), nil
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return nil, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}

	thickness := defaultThicknessMm
	if thicknessStr := getCell(row, mapping.Thickness); thicknessStr != "" {
		thickness, err = strconv.ParseFloat(thicknessStr, 64)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, thicknessStr), nil
		}
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
	}

	if length <= 0 || width <= 0 || thickness <= 0 || qty <= 0 {
		return nil, fmt.Sprintf("%s: Length, width, thickness, and quantity must be positive", rowLabel), nil
	}

	var warnings []string

	grain := false
	if grainStr := getCell(row, mapping.Grain); grainStr != "" {
		var ok bool
		grain, ok = parseBool(grainStr)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown grain match value '%s', defaulting to no", rowLabel, grainStr))
		}
	}

	edges := map[model.EdgeSide]model.EdgeFinish{}
	for side, idx := range mapping.Edges {
		cell := getCell(row, idx)
		finish, ok := parseEdge(cell)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown %s edge finish '%s', treating as raw", rowLabel, side, cell))
			continue
		}
		if finish.Laminated {
			edges[side] = finish
		}
	}

	pieces := make([]model.Piece, 0, qty)
	for i := 0; i < qty; i++ {
		p := model.NewPiece(label, length, width, thickness)
		if qty > 1 {
			p.Label = fmt.Sprintf("%s #%d", label, i+1)
		}
		p.GrainMatch = grain
		for side, finish := range edges {
			p.Edges[side] = finish
		}
		pieces = append(pieces, p)
	}

	return pieces, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports pieces from a CSV file, auto-detecting the delimiter
// and mapping columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a known
// delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pieces from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No recognized header: if the second column is not numeric the
		// first row is probably an unrecognized header, skip it
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		pieces, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Pieces))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Pieces = append(result.Pieces, pieces...)
	}

	return result
}
