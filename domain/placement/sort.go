package placement

import (
	"fmt"
	"sort"
)

// SortColumn names a sortable student column
type SortColumn string

const (
	SortByName      SortColumn = "name"
	SortByRollNo    SortColumn = "rollNo"
	SortByBranch    SortColumn = "branch"
	SortByBtech     SortColumn = "btechPercentage"
	SortByStatus    SortColumn = "status"
	SortByCreatedAt SortColumn = "createdAt"
)

// ParseSortColumn accepts a column name; empty sorts by name
func ParseSortColumn(s string) (SortColumn, error) {
	switch c := SortColumn(s); c {
	case "":
		return SortByName, nil
	case SortByName, SortByRollNo, SortByBranch, SortByBtech, SortByStatus, SortByCreatedAt:
		return c, nil
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// SortStudents sorts in place. Equal keys keep their relative order.
func SortStudents(students []Student, column SortColumn, descending bool) {
	less := func(a, b Student) bool {
		switch column {
		case SortByRollNo:
			return a.RollNo < b.RollNo
		case SortByBranch:
			return a.Branch < b.Branch
		case SortByBtech:
			return a.BtechPercentage < b.BtechPercentage
		case SortByStatus:
			return a.Status < b.Status
		case SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(students, func(i, j int) bool {
		if descending {
			return less(students[j], students[i])
		}
		return less(students[i], students[j])
	})
}

// Paginate returns the 1-based page of items and the total page count.
// A page past the end yields an empty slice.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		return items, 1
	}
	if page < 1 {
		page = 1
	}
	pages := (len(items) + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, pages
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pages
}
