package roster

import (
	"errors"
	"fmt"

	domain "placementcms/domain/roster"
	apperrors "placementcms/internal/errors"
)

var (
	// ErrInvalidFileType means neither the MIME type nor the filename suffix is a spreadsheet
	ErrInvalidFileType = apperrors.UnsupportedFile("invalid file type")
	// ErrNoDataRows means the first sheet has fewer than a header row plus one data row
	ErrNoDataRows = errors.New("file is empty or has no data rows")
	// ErrDuplicateColumn is returned under RejectDuplicates when two columns share a field
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrTooManyRows means the first sheet holds more data rows than the configured limit
	ErrTooManyRows = errors.New("too many rows")
)

// DecodeError wraps any failure raised while turning bytes into a grid
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode spreadsheet: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// DuplicateColumnError names the two headers that resolved to the same field
type DuplicateColumnError struct {
	Field  domain.CanonicalField
	First  string
	Second string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("columns %q and %q both map to field %s", e.First, e.Second, e.Field)
}

func (e *DuplicateColumnError) Is(target error) bool {
	return target == ErrDuplicateColumn
}

// RowLimitError reports a sheet that exceeds the row limit. Nothing in the
// sheet is validated when it is returned.
type RowLimitError struct {
	Rows  int
	Limit int
}

func (e *RowLimitError) Error() string {
	return fmt.Sprintf("sheet has %d data rows; the limit is %d", e.Rows, e.Limit)
}

func (e *RowLimitError) Is(target error) bool {
	return target == ErrTooManyRows
}
