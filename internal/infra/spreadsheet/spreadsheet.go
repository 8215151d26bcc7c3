package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Parser decodes uploaded spreadsheets into raw rows. CSV is the primary
// format; .xlsx goes through a real OOXML parser. Legacy .xls workbooks are
// not decodable here and get a pointed error instead of silently garbled rows.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Rows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data), nil
	case ".xlsx":
		return parseXLSX(data)
	case ".xls":
		return nil, fmt.Errorf("legacy .xls is not supported, save the sheet as .csv or .xlsx")
	default:
		return nil, fmt.Errorf("unrecognized spreadsheet format %q", filepath.Ext(filename))
	}
}
