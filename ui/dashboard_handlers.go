package ui

import (
	"github.com/gin-gonic/gin"
)

// handleDashboardStats serves GET /api/dashboard/stats
func (s *Server) handleDashboardStats(c *gin.Context) {
	stats, err := s.services.Dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}
