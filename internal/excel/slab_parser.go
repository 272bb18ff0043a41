package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"supply-console/internal/core"

	"github.com/xuri/excelize/v2"
)

// SlabRow is one parsed bulk-import row: the product it belongs to and the
// raw quantity slab, still unvalidated so the editor's rules apply once.
type SlabRow struct {
	RowNumber   int
	ProductCode string
	Slab        core.RawQuantitySlab
}

// ParseSlabRows reads a price-slab bulk upload (.xlsx or .csv) and returns
// its rows. The header row maps column aliases to the canonical fields;
// fully blank rows are skipped; a row with a product code but missing slab
// fields is reported with its 1-based row number.
func ParseSlabRows(fileName string, reader io.Reader) ([]SlabRow, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("input file is empty")
	}

	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	var rows [][]string
	switch ext {
	case ".csv":
		rows, err = parseCSVRows(data)
	case ".xlsx", ".xlsm", ".xls":
		rows, err = parseExcelRows(data)
	default:
		// Unknown extension: try excel first, then csv.
		rows, err = parseExcelRows(data)
		if err != nil {
			rows, err = parseCSVRows(data)
		}
		if err != nil {
			return nil, fmt.Errorf("unsupported or invalid slab file format")
		}
	}
	if err != nil {
		return nil, err
	}
	return parseSlabTable(rows)
}

func parseCSVRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}
	return rows, nil
}

func parseExcelRows(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}
	return rows, nil
}

func parseSlabTable(rows [][]string) ([]SlabRow, error) {
	colMap := mapSlabColumns(rows[0])
	for _, required := range []string{"product_code", "min_qty", "max_qty", "price_per_unit"} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	result := make([]SlabRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		code := cleanCell(readCell(cells, colMap["product_code"]))
		minQty := cleanCell(readCell(cells, colMap["min_qty"]))
		maxQty := cleanCell(readCell(cells, colMap["max_qty"]))
		unitPrice := cleanCell(readCell(cells, colMap["price_per_unit"]))

		if code == "" && minQty == "" && maxQty == "" && unitPrice == "" {
			continue
		}
		if code == "" {
			return nil, fmt.Errorf("row %d has slab values but no product code", index+1)
		}

		result = append(result, SlabRow{
			RowNumber:   index + 1,
			ProductCode: code,
			Slab: core.RawQuantitySlab{
				MinQty:    minQty,
				MaxQty:    maxQty,
				UnitPrice: unitPrice,
			},
		})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("file has no valid slab rows")
	}
	return result, nil
}

func mapSlabColumns(header []string) map[string]int {
	aliases := map[string]string{
		"product_code":   "product_code",
		"product code":   "product_code",
		"product":        "product_code",
		"sku":            "product_code",
		"code":           "product_code",
		"min_qty":        "min_qty",
		"min qty":        "min_qty",
		"minimum qty":    "min_qty",
		"min quantity":   "min_qty",
		"max_qty":        "max_qty",
		"max qty":        "max_qty",
		"maximum qty":    "max_qty",
		"max quantity":   "max_qty",
		"price_per_unit": "price_per_unit",
		"price per unit": "price_per_unit",
		"unit price":     "price_per_unit",
		"unit_price":     "price_per_unit",
		"price":          "price_per_unit",
	}
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := strings.ToLower(cleanCell(col))
		canonical, ok := aliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func readCell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func cleanCell(value string) string {
	text := strings.TrimPrefix(strings.TrimSpace(value), "\uFEFF")
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}
