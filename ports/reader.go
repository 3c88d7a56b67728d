package ports

import (
	"placementcms/domain/roster"
)

// SheetDecoder turns uploaded spreadsheet bytes into a workbook of typed cells.
// Implementations must not retain data after Decode returns.
type SheetDecoder interface {
	Decode(data []byte) (*roster.Workbook, error)
}
