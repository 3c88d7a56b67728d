package ui

import (
	"net/http"

	"placementcms/domain/placement"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListCompanies(c *gin.Context) {
	companies, err := s.services.Companies.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, companies)
}

func (s *Server) handleCreateCompany(c *gin.Context) {
	var company placement.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	company.ID = ""

	if err := s.services.Companies.Create(c.Request.Context(), &company); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, company)
}

func (s *Server) handleGetCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	company, err := s.services.Companies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, company)
}

func (s *Server) handleUpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var company placement.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	company.ID = id

	if err := s.services.Companies.Update(c.Request.Context(), &company); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, company)
}

func (s *Server) handleDeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.services.Companies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
