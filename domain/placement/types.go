package placement

import (
	"time"

	"placementcms/domain/core"
	"placementcms/domain/roster"
)

// EligibilityThreshold is the default btech percentage a student needs to be eligible
const EligibilityThreshold = 70.0

// Student is a persisted roster record
type Student struct {
	ID core.ID `json:"id" db:"id"`
	roster.StudentRecord
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Company is a recruiting company
type Company struct {
	ID            core.ID   `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" validate:"required,max=255"`
	Industry      string    `json:"industry" db:"industry" validate:"max=255"`
	Location      string    `json:"location" db:"location" validate:"max=255"`
	Website       string    `json:"website" db:"website" validate:"omitempty,url"`
	ContactPerson string    `json:"contactPerson" db:"contact_person" validate:"max=255"`
	ContactEmail  string    `json:"contactEmail" db:"contact_email" validate:"omitempty,email"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// PlacementStatus is the lifecycle of an offer
type PlacementStatus string

const (
	PlacementOffered  PlacementStatus = "offered"
	PlacementAccepted PlacementStatus = "accepted"
	PlacementDeclined PlacementStatus = "declined"
)

// Valid reports whether s is a known placement status
func (s PlacementStatus) Valid() bool {
	switch s {
	case PlacementOffered, PlacementAccepted, PlacementDeclined:
		return true
	}
	return false
}

// Placement links a student to an offer from a company
type Placement struct {
	ID            core.ID         `json:"id" db:"id"`
	StudentID     core.ID         `json:"studentId" db:"student_id"`
	CompanyID     core.ID         `json:"companyId" db:"company_id"`
	Position      string          `json:"position" db:"position"`
	Package       float64         `json:"package" db:"package"`
	PlacementDate time.Time       `json:"placementDate" db:"placement_date"`
	Status        PlacementStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// BranchStats aggregates one branch for the dashboard
type BranchStats struct {
	Students     int     `json:"students"`
	Eligible     int     `json:"eligible"`
	AverageBtech float64 `json:"averageBtech"`
}

// BandCount is one bucket of the btech percentage histogram
type BandCount struct {
	Band  Band `json:"band"`
	Count int  `json:"count"`
}

// DashboardStats is the summary behind the dashboard overview
type DashboardStats struct {
	Students     int                    `json:"students"`
	Companies    int                    `json:"companies"`
	Placements   int                    `json:"placements"`
	Placed       int                    `json:"placed"`
	Eligible     int                    `json:"eligible"`
	AverageBtech float64                `json:"averageBtech"`
	MedianBtech  float64                `json:"medianBtech"`
	P90Btech     float64                `json:"p90Btech"`
	Branches     map[string]BranchStats `json:"branches"`
	Bands        []BandCount            `json:"bands"`
}
