package roster

import (
	"strconv"
	"strings"
	"time"
)

// CellKind tags the dynamic type of a decoded spreadsheet cell
type CellKind int

const (
	CellNull CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell is one decoded spreadsheet value. The zero value is a null cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
}

// NullCell returns an absent cell
func NullCell() Cell { return Cell{} }

// TextCell wraps a string value
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell wraps a numeric value
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

// DateCell wraps a date value
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// IsNull reports whether the cell is absent
func (c Cell) IsNull() bool { return c.Kind == CellNull }

// IsBlank reports whether the cell is absent or stringifies to whitespace
func (c Cell) IsBlank() bool {
	return c.IsNull() || strings.TrimSpace(c.String()) == ""
}

// String renders the cell the way it is stored into text fields
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 && c.Time.Nanosecond() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// RawGrid is a rectangular-ish grid of cells; rows may be ragged
type RawGrid [][]Cell

// Workbook is the Sheet Decoder output
type Workbook struct {
	SheetNames []string
	Sheets     map[string]RawGrid
}

// FirstSheet returns the grid of the first sheet, or nil when there is none
func (w *Workbook) FirstSheet() RawGrid {
	if w == nil || len(w.SheetNames) == 0 {
		return nil
	}
	return w.Sheets[w.SheetNames[0]]
}

// HeaderKey is a normalized header used only as a lookup key
type HeaderKey string

// StudentRecord is the canonical shape of one accepted roster row
type StudentRecord struct {
	Name            string  `json:"name" db:"name" validate:"required,max=255"`
	Email           string  `json:"email" db:"email" validate:"required,max=255"`
	RollNo          string  `json:"rollNo" db:"roll_no" validate:"required,max=100"`
	Branch          string  `json:"branch" db:"branch" validate:"required,max=100"`
	BtechPercentage float64 `json:"btechPercentage" db:"btech_percentage"`
	Status          string  `json:"status" db:"status" validate:"required,max=50"`

	Mobile                 *string  `json:"mobile,omitempty" db:"mobile" validate:"omitempty,max=50"`
	Gender                 *string  `json:"gender,omitempty" db:"gender" validate:"omitempty,max=50"`
	AssignedTPO            *string  `json:"assignedTPO,omitempty" db:"assigned_tpo" validate:"omitempty,max=255"`
	YearOfPassout          *string  `json:"yearOfPassout,omitempty" db:"year_of_passout" validate:"omitempty,max=20"`
	GraduationPercentage   *float64 `json:"graduationPercentage,omitempty" db:"graduation_percentage"`
	CollegeName            *string  `json:"collegeName,omitempty" db:"college_name" validate:"omitempty,max=255"`
	InterDiplomaPercentage *float64 `json:"interDiplomaPercentage,omitempty" db:"inter_diploma_percentage"`
	PreviousCollegeName    *string  `json:"previousCollegeName,omitempty" db:"previous_college_name" validate:"omitempty,max=255"`
	SSCPercentage          *float64 `json:"sscPercentage,omitempty" db:"ssc_percentage"`
	SchoolName             *string  `json:"schoolName,omitempty" db:"school_name" validate:"omitempty,max=255"`
	PanCardNo              *string  `json:"panCardNo,omitempty" db:"pan_card_no" validate:"omitempty,max=20"`
	AadharCardNo           *string  `json:"aadharCardNo,omitempty" db:"aadhar_card_no" validate:"omitempty,max=20"`
}

// Get returns the value stored for f. ok is false for an unset optional field.
func (r *StudentRecord) Get(f CanonicalField) (FieldValue, bool) {
	switch f {
	case FieldName:
		return FieldValue{Text: r.Name}, true
	case FieldEmail:
		return FieldValue{Text: r.Email}, true
	case FieldRollNo:
		return FieldValue{Text: r.RollNo}, true
	case FieldBranch:
		return FieldValue{Text: r.Branch}, true
	case FieldBtechPercentage:
		return FieldValue{Number: r.BtechPercentage, Numeric: true}, true
	case FieldStatus:
		return FieldValue{Text: r.Status}, true
	}
	if p := r.optionalText(f); p != nil {
		if *p == nil {
			return FieldValue{}, false
		}
		return FieldValue{Text: **p}, true
	}
	if p := r.optionalNumber(f); p != nil {
		if *p == nil {
			return FieldValue{}, false
		}
		return FieldValue{Number: **p, Numeric: true}, true
	}
	return FieldValue{}, false
}

func (r *StudentRecord) optionalText(f CanonicalField) **string {
	switch f {
	case FieldMobile:
		return &r.Mobile
	case FieldGender:
		return &r.Gender
	case FieldAssignedTPO:
		return &r.AssignedTPO
	case FieldYearOfPassout:
		return &r.YearOfPassout
	case FieldCollegeName:
		return &r.CollegeName
	case FieldPreviousCollegeName:
		return &r.PreviousCollegeName
	case FieldSchoolName:
		return &r.SchoolName
	case FieldPanCardNo:
		return &r.PanCardNo
	case FieldAadharCardNo:
		return &r.AadharCardNo
	}
	return nil
}

func (r *StudentRecord) optionalNumber(f CanonicalField) **float64 {
	switch f {
	case FieldGraduationPercentage:
		return &r.GraduationPercentage
	case FieldInterDiplomaPercentage:
		return &r.InterDiplomaPercentage
	case FieldSSCPercentage:
		return &r.SSCPercentage
	}
	return nil
}

// FieldValue is one extracted value before the record is assembled
type FieldValue struct {
	Text    string
	Number  float64
	Numeric bool
}

// Draft collects the values extracted from one row
type Draft map[CanonicalField]FieldValue

// SetText stores a string value
func (d Draft) SetText(f CanonicalField, s string) { d[f] = FieldValue{Text: s} }

// SetNumber stores a numeric value
func (d Draft) SetNumber(f CanonicalField, n float64) { d[f] = FieldValue{Number: n, Numeric: true} }

// Has reports whether f holds a present, non-empty value
func (d Draft) Has(f CanonicalField) bool {
	v, ok := d[f]
	if !ok {
		return false
	}
	if v.Numeric {
		return true
	}
	return strings.TrimSpace(v.Text) != ""
}

// Record assembles the StudentRecord. Callers check mandatory fields first.
func (d Draft) Record() *StudentRecord {
	rec := &StudentRecord{
		Name:            d[FieldName].Text,
		Email:           d[FieldEmail].Text,
		RollNo:          d[FieldRollNo].Text,
		Branch:          d[FieldBranch].Text,
		BtechPercentage: d[FieldBtechPercentage].Number,
		Status:          d[FieldStatus].Text,
	}
	rec.Mobile = d.text(FieldMobile)
	rec.Gender = d.text(FieldGender)
	rec.AssignedTPO = d.text(FieldAssignedTPO)
	rec.YearOfPassout = d.text(FieldYearOfPassout)
	rec.GraduationPercentage = d.number(FieldGraduationPercentage)
	rec.CollegeName = d.text(FieldCollegeName)
	rec.InterDiplomaPercentage = d.number(FieldInterDiplomaPercentage)
	rec.PreviousCollegeName = d.text(FieldPreviousCollegeName)
	rec.SSCPercentage = d.number(FieldSSCPercentage)
	rec.SchoolName = d.text(FieldSchoolName)
	rec.PanCardNo = d.text(FieldPanCardNo)
	rec.AadharCardNo = d.text(FieldAadharCardNo)
	return rec
}

func (d Draft) text(f CanonicalField) *string {
	if !d.Has(f) {
		return nil
	}
	s := d[f].Text
	return &s
}

func (d Draft) number(f CanonicalField) *float64 {
	v, ok := d[f]
	if !ok || !v.Numeric {
		return nil
	}
	n := v.Number
	return &n
}

// RowError is one validation failure tied to a spreadsheet row
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Outcome discriminates UploadResult
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	// OutcomePartial is only produced by the partial-accept policy
	OutcomePartial Outcome = "partial"
)

// UploadResult is the outcome of ingesting one roster file
type UploadResult struct {
	Outcome     Outcome         `json:"outcome"`
	Records     []StudentRecord `json:"records,omitempty"`
	Count       int             `json:"count"`
	Errors      []RowError      `json:"errors,omitempty"`
	SkippedRows int             `json:"skippedRows"`
}

// Accepted builds an accepted outcome
func Accepted(records []StudentRecord) *UploadResult {
	if records == nil {
		records = []StudentRecord{}
	}
	return &UploadResult{Outcome: OutcomeAccepted, Records: records, Count: len(records)}
}

// Rejected builds a rejected outcome; no records survive
func Rejected(errs []RowError) *UploadResult {
	return &UploadResult{Outcome: OutcomeRejected, Errors: errs}
}

// Partial builds an outcome carrying both accepted records and row errors
func Partial(records []StudentRecord, errs []RowError) *UploadResult {
	if records == nil {
		records = []StudentRecord{}
	}
	return &UploadResult{Outcome: OutcomePartial, Records: records, Count: len(records), Errors: errs}
}

// RejectedRows counts the distinct rows carrying at least one error
func (r *UploadResult) RejectedRows() int {
	rows := make(map[int]struct{}, len(r.Errors))
	for _, e := range r.Errors {
		rows[e.Row] = struct{}{}
	}
	return len(rows)
}

// ImportLog is the audit entry written for every roster upload
type ImportLog struct {
	ID        string    `json:"id" db:"id"`
	Filename  string    `json:"filename" db:"filename"`
	Checksum  string    `json:"checksum" db:"checksum"`
	Outcome   Outcome   `json:"outcome" db:"outcome"`
	Accepted  int       `json:"accepted" db:"accepted"`
	Rejected  int       `json:"rejected" db:"rejected"`
	Committed bool      `json:"committed" db:"committed"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
