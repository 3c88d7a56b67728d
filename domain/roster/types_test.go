package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellString(t *testing.T) {
	assert.Equal(t, "", NullCell().String())
	assert.Equal(t, " CSE ", TextCell(" CSE ").String())
	assert.Equal(t, "85.5", NumberCell(85.5).String())
	assert.Equal(t, "9876543210", NumberCell(9876543210).String())
	assert.Equal(t, "2024-06-30", DateCell(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2024-06-30T14:05:00Z", DateCell(time.Date(2024, 6, 30, 14, 5, 0, 0, time.UTC)).String())
}

func TestCellIsBlank(t *testing.T) {
	assert.True(t, NullCell().IsBlank())
	assert.True(t, TextCell("   ").IsBlank())
	assert.False(t, TextCell("x").IsBlank())
	assert.False(t, NumberCell(0).IsBlank())
}

func TestDraftRecord(t *testing.T) {
	d := make(Draft)
	d.SetText(FieldName, "Asha")
	d.SetText(FieldEmail, "asha@college.edu")
	d.SetText(FieldRollNo, "21CS001")
	d.SetText(FieldBranch, "CSE")
	d.SetNumber(FieldBtechPercentage, 82)
	d.SetText(FieldStatus, "Eligible")
	d.SetText(FieldMobile, "9876543210")
	d.SetNumber(FieldSSCPercentage, 91.2)

	rec := d.Record()
	assert.Equal(t, "Asha", rec.Name)
	assert.Equal(t, 82.0, rec.BtechPercentage)
	require.NotNil(t, rec.Mobile)
	assert.Equal(t, "9876543210", *rec.Mobile)
	require.NotNil(t, rec.SSCPercentage)
	assert.Equal(t, 91.2, *rec.SSCPercentage)
	assert.Nil(t, rec.Gender)
	assert.Nil(t, rec.GraduationPercentage)

	v, ok := rec.Get(FieldSSCPercentage)
	require.True(t, ok)
	assert.True(t, v.Numeric)
	assert.Equal(t, 91.2, v.Number)

	v, ok = rec.Get(FieldMobile)
	require.True(t, ok)
	assert.Equal(t, "9876543210", v.Text)

	_, ok = rec.Get(FieldGender)
	assert.False(t, ok)
}

func TestParseCanonicalField(t *testing.T) {
	f, err := ParseCanonicalField("btechPercentage")
	require.NoError(t, err)
	assert.Equal(t, FieldBtechPercentage, f)
	assert.True(t, f.IsMandatory())
	assert.True(t, f.IsNumeric())

	_, err = ParseCanonicalField("cgpa")
	assert.Error(t, err)
}

func TestPolicyConstructors(t *testing.T) {
	acc := Accepted(nil)
	assert.Equal(t, OutcomeAccepted, acc.Outcome)
	assert.NotNil(t, acc.Records)
	assert.Zero(t, acc.Count)

	rej := Rejected([]RowError{{Row: 2, Message: "bad"}})
	assert.Equal(t, OutcomeRejected, rej.Outcome)
	assert.Empty(t, rej.Records)
}
