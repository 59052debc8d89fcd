// provenance.go - where each dataset came from: live source or fallback table
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Setup all provenance routes
func setupProvenanceRoutes(r *gin.Engine, s *server) {
	// Dashboard tab
	r.GET("/fragments/provenance", func(c *gin.Context) {
		stats, err := s.provenance.Stats(c.Request.Context())
		if err != nil {
			s.logger.WithError(err).Error("Error loading provenance stats")
			c.HTML(http.StatusInternalServerError, "provenance.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "provenance.html", gin.H{
			"stats": stats,
		})
	})

	r.GET("/api/provenance", func(c *gin.Context) {
		stats, err := s.provenance.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Statistics export (for backups or analysis)
	r.GET("/api/provenance/export", func(c *gin.Context) {
		stats, err := s.provenance.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Set headers for file download
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", "attachment; filename=provenance-stats.json")

		s.logger.Info("Provenance stats exported")
		c.JSON(http.StatusOK, stats)
	})
}
