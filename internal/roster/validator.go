package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	domain "placementcms/domain/roster"
)

// RowResult is the outcome of validating one data row. Exactly one of
// Skipped, a non-nil Record, or a non-empty Errors is set.
type RowResult struct {
	Record  *domain.StudentRecord
	Errors  []domain.RowError
	Skipped bool
}

// ValidateRow extracts, coerces and checks one data row. rowNumber is the
// 1-based spreadsheet row (the header is row 1). Cells missing from the end
// of a short row are treated as absent.
func ValidateRow(row []domain.Cell, columns ColumnMapping, rowNumber int) RowResult {
	if isBlankRow(row) {
		return RowResult{Skipped: true}
	}

	draft := make(domain.Draft)
	var errs []domain.RowError

	for _, col := range columns {
		if !col.Mapped {
			continue
		}

		cell := cellAt(row, col.Index)
		if cell.IsBlank() {
			continue
		}

		if !col.Field.IsNumeric() {
			draft.SetText(col.Field, strings.TrimSpace(cell.String()))
			continue
		}

		n, ok := parseNumber(cell)
		switch {
		case ok && n >= 0:
			draft.SetNumber(col.Field, n)
		case col.Field.IsMandatory():
			message := fmt.Sprintf("%s must be a number.", col.Label)
			if ok {
				message = fmt.Sprintf("%s must not be negative.", col.Label)
			}
			errs = append(errs, domain.RowError{Row: rowNumber, Field: col.Label, Message: message})
		default:
			// an unusable optional value clears anything an earlier column stored
			delete(draft, col.Field)
		}
	}

	for _, field := range domain.MandatoryFields {
		if !draft.Has(field) {
			errs = append(errs, domain.RowError{
				Row:     rowNumber,
				Field:   string(field),
				Message: fmt.Sprintf("Missing or empty mandatory field: %s", field),
			})
		}
	}

	if len(errs) > 0 {
		return RowResult{Errors: errs}
	}
	return RowResult{Record: draft.Record()}
}

func isBlankRow(row []domain.Cell) bool {
	for _, cell := range row {
		if !cell.IsBlank() {
			return false
		}
	}
	return true
}

func cellAt(row []domain.Cell, index int) domain.Cell {
	if index < 0 || index >= len(row) {
		return domain.NullCell()
	}
	return row[index]
}

// parseNumber coerces a cell to a finite float. Text accepts an optional
// trailing percent sign; hex literals and dates never parse.
func parseNumber(cell domain.Cell) (float64, bool) {
	switch cell.Kind {
	case domain.CellNumber:
		return cell.Number, isFinite(cell.Number)
	case domain.CellText:
		text := strings.TrimSpace(cell.Text)
		if hasHexPrefix(text) {
			return 0, false
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil && strings.HasSuffix(text, "%") {
			n, err = strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(text, "%")), 64)
		}
		if err != nil {
			return 0, false
		}
		return n, isFinite(n)
	default:
		return 0, false
	}
}

func hasHexPrefix(text string) bool {
	digits := strings.TrimLeft(text, "+-")
	return len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X')
}

func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
