package roster

import "fmt"

// CanonicalField names one StudentRecord attribute that spreadsheet columns map onto
type CanonicalField string

const (
	FieldName                   CanonicalField = "name"
	FieldEmail                  CanonicalField = "email"
	FieldRollNo                 CanonicalField = "rollNo"
	FieldBranch                 CanonicalField = "branch"
	FieldBtechPercentage        CanonicalField = "btechPercentage"
	FieldStatus                 CanonicalField = "status"
	FieldMobile                 CanonicalField = "mobile"
	FieldGender                 CanonicalField = "gender"
	FieldAssignedTPO            CanonicalField = "assignedTPO"
	FieldYearOfPassout          CanonicalField = "yearOfPassout"
	FieldGraduationPercentage   CanonicalField = "graduationPercentage"
	FieldCollegeName            CanonicalField = "collegeName"
	FieldInterDiplomaPercentage CanonicalField = "interDiplomaPercentage"
	FieldPreviousCollegeName    CanonicalField = "previousCollegeName"
	FieldSSCPercentage          CanonicalField = "sscPercentage"
	FieldSchoolName             CanonicalField = "schoolName"
	FieldPanCardNo              CanonicalField = "panCardNo"
	FieldAadharCardNo           CanonicalField = "aadharCardNo"
)

// AllFields lists every canonical field in template column order
var AllFields = []CanonicalField{
	FieldName,
	FieldEmail,
	FieldRollNo,
	FieldBranch,
	FieldBtechPercentage,
	FieldStatus,
	FieldMobile,
	FieldGender,
	FieldAssignedTPO,
	FieldYearOfPassout,
	FieldGraduationPercentage,
	FieldCollegeName,
	FieldInterDiplomaPercentage,
	FieldPreviousCollegeName,
	FieldSSCPercentage,
	FieldSchoolName,
	FieldPanCardNo,
	FieldAadharCardNo,
}

// MandatoryFields is checked in this order, so error lists are stable
var MandatoryFields = []CanonicalField{
	FieldName,
	FieldEmail,
	FieldRollNo,
	FieldBranch,
	FieldBtechPercentage,
	FieldStatus,
}

var (
	mandatorySet = map[CanonicalField]bool{}
	numericSet   = map[CanonicalField]bool{
		FieldBtechPercentage:        true,
		FieldGraduationPercentage:   true,
		FieldInterDiplomaPercentage: true,
		FieldSSCPercentage:          true,
	}
	knownSet = map[CanonicalField]bool{}
)

// displayNames are the human headers written into the roster template
var displayNames = map[CanonicalField]string{
	FieldName:                   "Name",
	FieldEmail:                  "Email",
	FieldRollNo:                 "Roll No",
	FieldBranch:                 "Branch",
	FieldBtechPercentage:        "BTech Percentage",
	FieldStatus:                 "Status",
	FieldMobile:                 "Mobile",
	FieldGender:                 "Gender",
	FieldAssignedTPO:            "Assigned TPO",
	FieldYearOfPassout:          "Year Of Passout",
	FieldGraduationPercentage:   "Graduation Percentage",
	FieldCollegeName:            "College Name",
	FieldInterDiplomaPercentage: "Inter Diploma Percentage",
	FieldPreviousCollegeName:    "Previous College Name",
	FieldSSCPercentage:          "SSC Percentage",
	FieldSchoolName:             "School Name",
	FieldPanCardNo:              "PAN Card No",
	FieldAadharCardNo:           "Aadhar Card No",
}

func init() {
	for _, f := range MandatoryFields {
		mandatorySet[f] = true
	}
	for _, f := range AllFields {
		knownSet[f] = true
	}
}

// IsMandatory reports whether a missing value rejects the row
func (f CanonicalField) IsMandatory() bool { return mandatorySet[f] }

// IsNumeric reports whether values are parsed as real numbers
func (f CanonicalField) IsNumeric() bool { return numericSet[f] }

// IsKnown reports whether f belongs to the closed canonical set
func (f CanonicalField) IsKnown() bool { return knownSet[f] }

// DisplayName returns the header used in generated templates
func (f CanonicalField) DisplayName() string {
	if name, ok := displayNames[f]; ok {
		return name
	}
	return string(f)
}

func (f CanonicalField) String() string { return string(f) }

// ParseCanonicalField validates a field name coming from configuration
func ParseCanonicalField(s string) (CanonicalField, error) {
	f := CanonicalField(s)
	if !f.IsKnown() {
		return "", fmt.Errorf("unknown canonical field %q", s)
	}
	return f, nil
}
