package ui

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"placementcms/app"
	"placementcms/domain/placement"
	"placementcms/domain/roster"
	apperrors "placementcms/internal/errors"

	"github.com/gin-gonic/gin"
)

const defaultPerPage = 20

// handleListStudents serves GET /api/students
func (s *Server) handleListStudents(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		respondError(c, apperrors.WithCode(apperrors.CodeInvalidInput, err))
		return
	}

	page, err := s.services.Students.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// listOptions reads filter, sort and paging parameters from the query string
func listOptions(c *gin.Context) (app.ListOptions, error) {
	band, err := placement.ParseBand(c.Query("band"))
	if err != nil {
		return app.ListOptions{}, err
	}
	column, err := placement.ParseSortColumn(c.Query("sort"))
	if err != nil {
		return app.ListOptions{}, err
	}

	filter := placement.StudentFilter{
		Search: c.Query("q"),
		Branch: c.Query("branch"),
		Band:   band,
	}
	for _, status := range c.QueryArray("status") {
		for _, part := range strings.Split(status, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Statuses = append(filter.Statuses, part)
			}
		}
	}
	if raw := strings.TrimSpace(c.Query("min")); raw != "" {
		minPct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return app.ListOptions{}, err
		}
		filter.MinPercentage = &minPct
	}

	return app.ListOptions{
		Filter:     filter,
		Sort:       column,
		Descending: strings.EqualFold(c.Query("order"), "desc"),
		Page:       queryInt(c, "page", 1),
		PerPage:    queryInt(c, "per_page", defaultPerPage),
	}, nil
}

// handleCreateStudent serves POST /api/students
func (s *Server) handleCreateStudent(c *gin.Context) {
	var record roster.StudentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	student, err := s.services.Students.Create(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, student)
}

// handleGetStudent serves GET /api/students/:id
func (s *Server) handleGetStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	student, err := s.services.Students.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, student)
}

// handleUpdateStudent serves PUT /api/students/:id
func (s *Server) handleUpdateStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var record roster.StudentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	student, err := s.services.Students.Update(c.Request.Context(), id, record)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, student)
}

// handleDeleteStudent serves DELETE /api/students/:id
func (s *Server) handleDeleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.services.Students.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleBulkCreateStudents serves POST /api/students/bulk; the body is a
// JSON array of records stored all together or not at all
func (s *Server) handleBulkCreateStudents(c *gin.Context) {
	var records []roster.StudentRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No students provided"})
		return
	}

	students, err := s.services.Students.BulkCreate(c.Request.Context(), records)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[handleBulkCreateStudents] stored %d students", len(students))
	respondCreated(c, students)
}
