package roster

import (
	"fmt"
	"strings"

	domain "placementcms/domain/roster"
)

// DuplicatePolicy decides what happens when two columns resolve to the same field
type DuplicatePolicy string

const (
	// LastColumnWins maps every column; a later non-empty cell overwrites an earlier one
	LastColumnWins DuplicatePolicy = "last_column_wins"
	// FirstColumnWins ignores every later column mapped to an already-claimed field
	FirstColumnWins DuplicatePolicy = "first_column_wins"
	// RejectDuplicates fails the upload before any row is read
	RejectDuplicates DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy accepts the config spelling of a policy; empty means LastColumnWins
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LastColumnWins:
		return LastColumnWins, nil
	case FirstColumnWins:
		return FirstColumnWins, nil
	case RejectDuplicates:
		return RejectDuplicates, nil
	default:
		return "", fmt.Errorf("unknown duplicate column policy %q", s)
	}
}

// Column is the resolved mapping of one header cell
type Column struct {
	Index  int
	Label  string
	Key    domain.HeaderKey
	Field  domain.CanonicalField
	Mapped bool
}

// ColumnMapping is computed once from the header row and reused for every data row
type ColumnMapping []Column

// MappedFields returns the distinct fields the sheet provides, in column order
func (cm ColumnMapping) MappedFields() []domain.CanonicalField {
	seen := make(map[domain.CanonicalField]bool)
	var out []domain.CanonicalField
	for _, c := range cm {
		if c.Mapped && !seen[c.Field] {
			seen[c.Field] = true
			out = append(out, c.Field)
		}
	}
	return out
}

// MapColumns normalizes the header row and resolves each column
func MapColumns(header []domain.Cell, fields *FieldMap, policy DuplicatePolicy) (ColumnMapping, error) {
	mapping := make(ColumnMapping, len(header))
	claimed := make(map[domain.CanonicalField]int)

	for i, cell := range header {
		raw := cell.String()
		col := Column{
			Index: i,
			Label: headerLabel(raw, i),
			Key:   Normalize(raw),
		}

		if field, ok := fields.Resolve(col.Key); ok {
			col.Field = field
			col.Mapped = true

			if prev, dup := claimed[field]; dup {
				switch policy {
				case RejectDuplicates:
					return nil, &DuplicateColumnError{Field: field, First: mapping[prev].Label, Second: col.Label}
				case FirstColumnWins:
					col.Mapped = false
				}
			} else {
				claimed[field] = i
			}
		}

		mapping[i] = col
	}

	return mapping, nil
}

// headerLabel is the text cited in row errors; blank headers fall back to their position
func headerLabel(raw string, index int) string {
	label := strings.TrimSpace(raw)
	if label == "" {
		return fmt.Sprintf("Column %d", index+1)
	}
	return label
}
