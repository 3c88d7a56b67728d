package excel

import (
	"fmt"
	"io"

	"placementcms/domain/roster"

	"github.com/xuri/excelize/v2"
)

// TemplateSheet is the sheet name used in generated roster templates
const TemplateSheet = "Students"

// exampleRow fills the second row of the template, one value per field
var exampleRow = map[roster.CanonicalField]interface{}{
	roster.FieldName:                   "Asha Rao",
	roster.FieldEmail:                  "asha.rao@college.edu",
	roster.FieldRollNo:                 "21CS001",
	roster.FieldBranch:                 "CSE",
	roster.FieldBtechPercentage:        82.5,
	roster.FieldStatus:                 "Eligible",
	roster.FieldMobile:                 "9876543210",
	roster.FieldGender:                 "Female",
	roster.FieldAssignedTPO:            "Dr. Kumar",
	roster.FieldYearOfPassout:          "2025",
	roster.FieldGraduationPercentage:   82.5,
	roster.FieldCollegeName:            "Government Engineering College",
	roster.FieldInterDiplomaPercentage: 91,
	roster.FieldPreviousCollegeName:    "City Junior College",
	roster.FieldSSCPercentage:          94.2,
	roster.FieldSchoolName:             "Model High School",
	roster.FieldPanCardNo:              "ABCDE1234F",
	roster.FieldAadharCardNo:           "123412341234",
}

// WriteTemplate writes a roster workbook with every canonical column, mandatory
// headers highlighted and one example row
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return fmt.Errorf("failed to name template sheet: %w", err)
	}

	header := make([]interface{}, len(roster.AllFields))
	example := make([]interface{}, len(roster.AllFields))
	for i, field := range roster.AllFields {
		header[i] = field.DisplayName()
		example[i] = exampleRow[field]
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetSheetRow(TemplateSheet, "A2", &example); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	mandatoryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FDE68A"}},
	})
	if err != nil {
		return err
	}

	for i, field := range roster.AllFields {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		style := headerStyle
		if field.IsMandatory() {
			style = mandatoryStyle
		}
		if err := f.SetCellStyle(TemplateSheet, cell, cell, style); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(roster.AllFields))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(TemplateSheet, "A", lastCol, 22); err != nil {
		return err
	}

	return f.Write(w)
}
