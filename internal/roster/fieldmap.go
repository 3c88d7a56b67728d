package roster

import (
	"fmt"
	"sort"

	domain "placementcms/domain/roster"
)

// defaultAliases is the built-in synonym table. Keys are already normalized.
var defaultAliases = map[domain.HeaderKey]domain.CanonicalField{
	"name":        domain.FieldName,
	"studentname": domain.FieldName,
	"fullname":    domain.FieldName,

	"email":        domain.FieldEmail,
	"emailaddress": domain.FieldEmail,

	"rollno":     domain.FieldRollNo,
	"rollnumber": domain.FieldRollNo,

	"branch":     domain.FieldBranch,
	"department": domain.FieldBranch,

	"btechpercentage": domain.FieldBtechPercentage,
	"btechcgpa":       domain.FieldBtechPercentage,
	"btechmarks":      domain.FieldBtechPercentage,
	"btech":           domain.FieldBtechPercentage,

	"status":          domain.FieldStatus,
	"placementstatus": domain.FieldStatus,

	"mobile":      domain.FieldMobile,
	"phonenumber": domain.FieldMobile,
	"contactno":   domain.FieldMobile,

	"gender": domain.FieldGender,

	"assignedtpo": domain.FieldAssignedTPO,
	"tpoassigned": domain.FieldAssignedTPO,

	"yearofpassout": domain.FieldYearOfPassout,
	"passingyear":   domain.FieldYearOfPassout,

	"graduationpercentage": domain.FieldGraduationPercentage,
	"graduationmarks":      domain.FieldGraduationPercentage,
	"graduationcgpa":       domain.FieldGraduationPercentage,

	"collegename":     domain.FieldCollegeName,
	"institutionname": domain.FieldCollegeName,

	"interdiplomapercentage": domain.FieldInterDiplomaPercentage,
	"interpercentage":        domain.FieldInterDiplomaPercentage,
	"diplomapercentage":      domain.FieldInterDiplomaPercentage,
	"intermarks":             domain.FieldInterDiplomaPercentage,

	"previouscollegename": domain.FieldPreviousCollegeName,
	"intercollegename":    domain.FieldPreviousCollegeName,
	"diplomacollegename":  domain.FieldPreviousCollegeName,

	"sscpercentage":   domain.FieldSSCPercentage,
	"tenthpercentage": domain.FieldSSCPercentage,
	"sscmarks":        domain.FieldSSCPercentage,

	"schoolname":    domain.FieldSchoolName,
	"sscschoolname": domain.FieldSchoolName,

	"pancardno": domain.FieldPanCardNo,
	"pan":       domain.FieldPanCardNo,

	"aadharcardno": domain.FieldAadharCardNo,
	"aadhar":       domain.FieldAadharCardNo,
}

// FieldMap resolves normalized header keys to canonical fields.
// A FieldMap is read-only once built and safe for concurrent use.
type FieldMap struct {
	byKey map[domain.HeaderKey]domain.CanonicalField
}

// DefaultFieldMap returns the built-in synonym table
func DefaultFieldMap() *FieldMap {
	byKey := make(map[domain.HeaderKey]domain.CanonicalField, len(defaultAliases))
	for k, v := range defaultAliases {
		byKey[k] = v
	}
	return &FieldMap{byKey: byKey}
}

// Resolve looks up the canonical field for a normalized key
func (m *FieldMap) Resolve(key domain.HeaderKey) (domain.CanonicalField, bool) {
	f, ok := m.byKey[key]
	return f, ok
}

// WithAliases returns a copy extended with extra header → field aliases.
// Alias headers are normalized; an alias may override a built-in entry.
// Two aliases that normalize to the same key must name the same field.
func (m *FieldMap) WithAliases(aliases map[string]string) (*FieldMap, error) {
	byKey := make(map[domain.HeaderKey]domain.CanonicalField, len(m.byKey)+len(aliases))
	for k, v := range m.byKey {
		byKey[k] = v
	}

	headers := make([]string, 0, len(aliases))
	for header := range aliases {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	seen := make(map[domain.HeaderKey]string, len(aliases))
	for _, header := range headers {
		field, err := domain.ParseCanonicalField(aliases[header])
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", header, err)
		}
		key := Normalize(header)
		if key == "" {
			return nil, fmt.Errorf("alias %q normalizes to an empty key", header)
		}
		if prev, ok := seen[key]; ok && byKey[key] != field {
			return nil, fmt.Errorf("aliases %q and %q both normalize to %q but map to %s and %s",
				prev, header, key, byKey[key], field)
		}
		seen[key] = header
		byKey[key] = field
	}
	return &FieldMap{byKey: byKey}, nil
}

// Aliases lists the keys mapping to a field, sorted
func (m *FieldMap) Aliases(field domain.CanonicalField) []domain.HeaderKey {
	var keys []domain.HeaderKey
	for k, v := range m.byKey {
		if v == field {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of known keys
func (m *FieldMap) Len() int {
	return len(m.byKey)
}
