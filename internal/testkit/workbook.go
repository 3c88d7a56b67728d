package testkit

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a fixture workbook. Nil values leave the cell empty.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// BuildXLSX writes the sheets into an in-memory .xlsx file. The first sheet
// replaces the default "Sheet1".
func BuildXLSX(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range sheets {
		name := sheet.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}

		for r, row := range sheet.Rows {
			for c, value := range row {
				if value == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(name, cell, value); err != nil {
					return nil, fmt.Errorf("set %s!%s: %w", name, cell, err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustXLSX is BuildXLSX for fixtures that cannot fail
func MustXLSX(rows ...[]interface{}) []byte {
	data, err := BuildXLSX(Sheet{Name: "Students", Rows: rows})
	if err != nil {
		panic(err)
	}
	return data
}

// RosterHeader is the header row used by most roster fixtures
func RosterHeader() []interface{} {
	return []interface{}{"Name", "Email", "Roll No", "Branch", "BTech %", "Status"}
}

// RosterRow builds a data row matching RosterHeader
func RosterRow(name, email, roll, branch string, btech interface{}, status string) []interface{} {
	return []interface{}{name, email, roll, branch, btech, status}
}
