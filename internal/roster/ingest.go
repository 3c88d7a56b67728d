package roster

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	domain "placementcms/domain/roster"
	"placementcms/internal"
	"placementcms/ports"
)

// Accepted spreadsheet MIME types
const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeXLS  = "application/vnd.ms-excel"
)

// Upload is one roster file as received from a client
type Upload struct {
	Filename string
	MimeType string
	Data     []byte
}

// Ingestor runs the roster pipeline for one upload at a time. It holds only
// read-only state and may be shared across goroutines.
type Ingestor struct {
	decoder   ports.SheetDecoder
	fields    *FieldMap
	duplicate DuplicatePolicy
	policy    AcceptPolicy
	maxRows   int
	logger    *internal.Logger
}

// Option configures an Ingestor
type Option func(*Ingestor)

// WithFieldMap replaces the built-in header synonym table
func WithFieldMap(m *FieldMap) Option {
	return func(i *Ingestor) {
		if m != nil {
			i.fields = m
		}
	}
}

// WithDuplicatePolicy sets how colliding header columns are resolved
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(i *Ingestor) { i.duplicate = p }
}

// WithAcceptPolicy sets the outcome decision
func WithAcceptPolicy(p AcceptPolicy) Option {
	return func(i *Ingestor) {
		if p != nil {
			i.policy = p
		}
	}
}

// WithMaxRows rejects sheets with more than n data rows; 0 means no limit
func WithMaxRows(n int) Option {
	return func(i *Ingestor) {
		if n >= 0 {
			i.maxRows = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *internal.Logger) Option {
	return func(i *Ingestor) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewIngestor creates an ingestor with the default field map, last-column-wins
// duplicate handling and the all-or-nothing policy
func NewIngestor(decoder ports.SheetDecoder, opts ...Option) *Ingestor {
	i := &Ingestor{
		decoder:   decoder,
		fields:    DefaultFieldMap(),
		duplicate: LastColumnWins,
		policy:    AllOrNothing{},
		logger:    internal.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// FieldMap returns the synonym table in use
func (i *Ingestor) FieldMap() *FieldMap { return i.fields }

// Policy returns the accept policy in use
func (i *Ingestor) Policy() AcceptPolicy { return i.policy }

// IsAcceptedType reports whether the upload looks like a spreadsheet by
// MIME type or filename suffix
func IsAcceptedType(filename, mimeType string) bool {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		if mediaType == MimeXLSX || mediaType == MimeXLS {
			return true
		}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Ingest validates an uploaded roster. A returned error is a transport or
// structural failure; row-level problems are reported in the result.
func (i *Ingestor) Ingest(ctx context.Context, up Upload) (*domain.UploadResult, error) {
	if !IsAcceptedType(up.Filename, up.MimeType) {
		return nil, ErrInvalidFileType
	}

	wb, err := i.decode(up.Data)
	if err != nil {
		i.logger.Warn("[RosterIngest] decode failed for %q: %v", up.Filename, err)
		return nil, err
	}

	grid := wb.FirstSheet()
	if len(grid) < 2 {
		return nil, ErrNoDataRows
	}
	if rows := len(grid) - 1; i.maxRows > 0 && rows > i.maxRows {
		return nil, &RowLimitError{Rows: rows, Limit: i.maxRows}
	}

	columns, err := MapColumns(grid[0], i.fields, i.duplicate)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("[RosterIngest] %q: %d columns, mapped fields %v", up.Filename, len(columns), columns.MappedFields())

	var (
		records []domain.StudentRecord
		errs    []domain.RowError
		skipped int
	)
	for idx := 1; idx < len(grid); idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := ValidateRow(grid[idx], columns, idx+1)
		switch {
		case res.Skipped:
			skipped++
		case res.Record != nil:
			records = append(records, *res.Record)
		default:
			i.logger.Trace("[RosterIngest] %q row %d: %d errors", up.Filename, idx+1, len(res.Errors))
			errs = append(errs, res.Errors...)
		}
	}

	result := i.policy.Decide(records, errs)
	result.SkippedRows = skipped
	i.logger.Info("[RosterIngest] %q: outcome=%s records=%d errors=%d skipped=%d",
		up.Filename, result.Outcome, len(records), len(errs), skipped)
	return result, nil
}

// decode runs the decoder and converts a panic into a DecodeError
func (i *Ingestor) decode(data []byte) (wb *domain.Workbook, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb = nil
			err = &DecodeError{Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	wb, err = i.decoder.Decode(data)
	if err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if wb == nil {
		return nil, &DecodeError{Cause: fmt.Errorf("decoder returned no workbook")}
	}
	return wb, nil
}
