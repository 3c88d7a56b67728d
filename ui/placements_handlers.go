package ui

import (
	"net/http"
	"time"

	"placementcms/domain/core"
	"placementcms/domain/placement"

	"github.com/gin-gonic/gin"
)

// placementRequest accepts either a date or a full timestamp for placementDate
type placementRequest struct {
	StudentID     string  `json:"studentId"`
	CompanyID     string  `json:"companyId"`
	Position      string  `json:"position"`
	Package       float64 `json:"package"`
	PlacementDate string  `json:"placementDate"`
	Status        string  `json:"status"`
}

func (r placementRequest) toPlacement() (*placement.Placement, string) {
	studentID, err := core.ParseID(r.StudentID)
	if err != nil {
		return nil, "invalid studentId"
	}
	companyID, err := core.ParseID(r.CompanyID)
	if err != nil {
		return nil, "invalid companyId"
	}

	var date time.Time
	if r.PlacementDate != "" {
		date, err = time.Parse("2006-01-02", r.PlacementDate)
		if err != nil {
			date, err = time.Parse(time.RFC3339, r.PlacementDate)
		}
		if err != nil {
			return nil, "placementDate must be YYYY-MM-DD or RFC3339"
		}
	}

	return &placement.Placement{
		StudentID:     studentID,
		CompanyID:     companyID,
		Position:      r.Position,
		Package:       r.Package,
		PlacementDate: date,
		Status:        placement.PlacementStatus(r.Status),
	}, ""
}

func (s *Server) handleListPlacements(c *gin.Context) {
	list, err := s.services.Placements.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, list)
}

func (s *Server) handleCreatePlacement(c *gin.Context) {
	var req placementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	p, problem := req.toPlacement()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": problem})
		return
	}

	if err := s.services.Placements.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, p)
}
