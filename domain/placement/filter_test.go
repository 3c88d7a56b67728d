package placement

import (
	"testing"
	"time"

	"placementcms/domain/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(name, roll, branch, status string, pct float64) Student {
	return Student{StudentRecord: roster.StudentRecord{
		Name: name, RollNo: roll, Branch: branch, Status: status, BtechPercentage: pct,
		Email: roll + "@college.edu",
	}}
}

func TestStudentFilterMatches(t *testing.T) {
	s := student("Asha Rao", "21CS001", "CSE", "Eligible", 82.5)
	min80 := 80.0
	min90 := 90.0

	tests := []struct {
		name   string
		filter StudentFilter
		want   bool
	}{
		{"empty filter", StudentFilter{}, true},
		{"search by name is case-insensitive", StudentFilter{Search: "asha"}, true},
		{"search by roll number", StudentFilter{Search: "cs001"}, true},
		{"search miss", StudentFilter{Search: "ravi"}, false},
		{"status in set", StudentFilter{Statuses: []string{"Placed", "Eligible"}}, true},
		{"status not in set", StudentFilter{Statuses: []string{"Placed"}}, false},
		{"branch match", StudentFilter{Branch: "CSE"}, true},
		{"branch mismatch", StudentFilter{Branch: "ECE"}, false},
		{"band hit", StudentFilter{Band: Band8to9}, true},
		{"band miss", StudentFilter{Band: Band9to10}, false},
		{"min percentage met", StudentFilter{MinPercentage: &min80}, true},
		{"min percentage unmet", StudentFilter{MinPercentage: &min90}, false},
		{"all criteria combined", StudentFilter{Search: "rao", Branch: "CSE", Band: Band8to9, Statuses: []string{"Eligible"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(s))
		})
	}
}

func TestBandBoundaries(t *testing.T) {
	assert.True(t, Band9to10.Contains(90))
	assert.True(t, Band9to10.Contains(100))
	assert.False(t, Band9to10.Contains(89.99))
	assert.True(t, Band8to9.Contains(80))
	assert.False(t, Band8to9.Contains(90))
	assert.True(t, Band6to7.Contains(60))
	assert.False(t, Band6to7.Contains(59.9))
	assert.True(t, BandNone.Contains(12))
}

func TestParseBand(t *testing.T) {
	b, err := ParseBand(" 7-8 ")
	require.NoError(t, err)
	assert.Equal(t, Band7to8, b)

	b, err = ParseBand("")
	require.NoError(t, err)
	assert.Equal(t, BandNone, b)

	_, err = ParseBand("5-6")
	assert.Error(t, err)
}

func TestFilterStudentsPreservesOrder(t *testing.T) {
	list := []Student{
		student("Zoya", "3", "CSE", "Eligible", 91),
		student("Arun", "1", "ECE", "Placed", 75),
		student("Meera", "2", "CSE", "Eligible", 72),
	}

	got := FilterStudents(list, StudentFilter{Branch: "CSE"})
	require.Len(t, got, 2)
	assert.Equal(t, "Zoya", got[0].Name)
	assert.Equal(t, "Meera", got[1].Name)
}

func TestFilterCompanies(t *testing.T) {
	list := []Company{{Name: "Infosys"}, {Name: "TCS"}, {Name: "Info Edge"}}

	assert.Len(t, FilterCompanies(list, "INFO"), 2)
	assert.Len(t, FilterCompanies(list, ""), 3)
	assert.Empty(t, FilterCompanies(list, "wipro"))
}

func TestSortStudents(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	list := []Student{
		student("Meera", "2", "CSE", "Eligible", 72),
		student("Arun", "1", "ECE", "Placed", 75),
		student("Zoya", "3", "CSE", "Eligible", 72),
	}
	for i := range list {
		list[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}

	SortStudents(list, SortByName, false)
	assert.Equal(t, []string{"Arun", "Meera", "Zoya"}, names(list))

	SortStudents(list, SortByBtech, true)
	assert.Equal(t, "Arun", list[0].Name)
	// ties keep their previous relative order
	assert.Equal(t, []string{"Meera", "Zoya"}, names(list[1:]))

	SortStudents(list, SortByCreatedAt, true)
	assert.Equal(t, []string{"Zoya", "Arun", "Meera"}, names(list))
}

func TestParseSortColumn(t *testing.T) {
	c, err := ParseSortColumn("")
	require.NoError(t, err)
	assert.Equal(t, SortByName, c)

	c, err = ParseSortColumn("btechPercentage")
	require.NoError(t, err)
	assert.Equal(t, SortByBtech, c)

	_, err = ParseSortColumn("password")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, pages := Paginate(items, 1, 2)
	assert.Equal(t, []int{1, 2}, page)
	assert.Equal(t, 3, pages)

	page, _ = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)

	page, _ = Paginate(items, 4, 2)
	assert.Empty(t, page)

	page, pages = Paginate(items, 0, 0)
	assert.Equal(t, items, page)
	assert.Equal(t, 1, pages)

	page, pages = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, pages)
}

func names(list []Student) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Name
	}
	return out
}
