package excel

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"placementcms/domain/roster"
	"placementcms/ports"

	"github.com/extrame/xls"
	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

// Decoder reads .xlsx workbooks with excelize and legacy .xls workbooks with
// extrame/xls. Only the first sheet is decoded.
type Decoder struct {
	config DecoderConfig
}

// NewDecoder creates a decoder; every row of the first sheet is read
func NewDecoder(config DecoderConfig) *Decoder {
	if config.Charset == "" {
		config.Charset = "utf-8"
	}
	return &Decoder{config: config}
}

var _ ports.SheetDecoder = (*Decoder)(nil)

// DetectFormat sniffs the container format from content, ignoring the filename
func DetectFormat(data []byte) Format {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return FormatXLSX
	case mt.Is("application/vnd.ms-excel"), mt.Is("application/x-ole-storage"):
		return FormatXLS
	case mt.Is("application/zip"):
		// xlsx written without the usual part ordering sniffs as a plain zip
		return FormatXLSX
	}
	return FormatUnknown
}

// Decode implements ports.SheetDecoder
func (d *Decoder) Decode(data []byte) (*roster.Workbook, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	startTime := time.Now()
	var (
		wb  *roster.Workbook
		err error
	)
	switch format := DetectFormat(data); format {
	case FormatXLS:
		wb, err = d.decodeXLS(data)
	case FormatXLSX:
		wb, err = d.decodeXLSX(data)
	default:
		return nil, fmt.Errorf("unrecognized spreadsheet content (%s)", mimetype.Detect(data).String())
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[SheetDecoder] decoded %d sheet(s) in %.2fms", len(wb.SheetNames), float64(time.Since(startTime).Nanoseconds())/1e6)
	return wb, nil
}

func (d *Decoder) decodeXLSX(data []byte) (*roster.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	first := sheets[0]
	rows, err := f.GetRows(first, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", first, err)
	}

	styles := make(map[int]bool)
	grid := make(roster.RawGrid, len(rows))
	for r, row := range rows {
		cells := make([]roster.Cell, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			cells[c] = d.xlsxCell(f, first, name, raw, date1904, styles)
		}
		grid[r] = cells
	}

	return &roster.Workbook{
		SheetNames: sheets,
		Sheets:     map[string]roster.RawGrid{first: grid},
	}, nil
}

// xlsxCell types one raw cell value. styles caches date detection per style id.
func (d *Decoder) xlsxCell(f *excelize.File, sheet, name, raw string, date1904 bool, styles map[int]bool) roster.Cell {
	cellType, err := f.GetCellType(sheet, name)
	if err != nil {
		return roster.TextCell(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return roster.TextCell("true")
		}
		return roster.TextCell("false")
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return roster.DateCell(t)
		}
		return roster.TextCell(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return roster.TextCell(raw)
		}
		if isDateStyled(f, sheet, name, styles) {
			if t, err := excelize.ExcelDateToTime(n, date1904); err == nil {
				return roster.DateCell(t)
			}
		}
		return roster.NumberCell(n)
	default:
		return roster.TextCell(raw)
	}
}

func isDateStyled(f *excelize.File, sheet, name string, styles map[int]bool) bool {
	idx, err := f.GetCellStyle(sheet, name)
	if err != nil || idx == 0 {
		return false
	}
	if isDate, ok := styles[idx]; ok {
		return isDate
	}

	isDate := false
	if style, err := f.GetStyle(idx); err == nil && style != nil {
		isDate = builtinDateFormats[style.NumFmt]
		if !isDate && style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	styles[idx] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format renders a date.
// Quoted literals and bracketed sections such as colors are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	return strings.ContainsAny(stripped, "dy") || strings.Contains(stripped, "h")
}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (d *Decoder) decodeXLS(data []byte) (*roster.Workbook, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), d.config.Charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}
	if workbook == nil {
		return nil, fmt.Errorf("no workbook stream in xls file")
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	names := make([]string, 0, workbook.NumSheets())
	for i := 0; i < workbook.NumSheets(); i++ {
		if sheet := workbook.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no readable sheets")
	}

	rowCount := int(sheet.MaxRow) + 1

	grid := make(roster.RawGrid, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]roster.Cell, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = xlsCell(row.Col(j))
		}
		grid = append(grid, trimTrailingNulls(cells))
	}

	return &roster.Workbook{
		SheetNames: names,
		Sheets:     map[string]roster.RawGrid{sheet.Name: grid},
	}, nil
}

// xlsRow returns nil for rows with no records; WorkSheet.Row panics on them
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// xlsCell types a legacy cell. The reader renders numbers in shortest 'f'
// form, so only text in exactly that form becomes a number; "007" stays text.
func xlsCell(raw string) roster.Cell {
	if raw == "" {
		return roster.NullCell()
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && strconv.FormatFloat(n, 'f', -1, 64) == raw {
		return roster.NumberCell(n)
	}
	return roster.TextCell(raw)
}

func trimTrailingNulls(cells []roster.Cell) []roster.Cell {
	end := len(cells)
	for end > 0 && cells[end-1].IsNull() {
		end--
	}
	return cells[:end]
}
