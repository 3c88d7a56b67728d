package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"placementcms/adapters/excel"
	domain "placementcms/domain/roster"
	apperrors "placementcms/internal/errors"
	"placementcms/internal/roster"

	"github.com/gin-gonic/gin"
)

const (
	uploadField      = "file"
	templateFilename = "student_roster_template.xlsx"
	historyLimit     = 20
)

// handleRosterUpload serves POST /api/students/upload
func (s *Server) handleRosterUpload(c *gin.Context) {
	limit := s.cfg.MaxUploadBytes
	if limit > 0 {
		if c.Request.ContentLength > limit {
			log.Printf("[handleRosterUpload] FAILED - body too large: %d bytes", c.Request.ContentLength)
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large."})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	file, header, err := c.Request.FormFile(uploadField)
	if err != nil {
		if isTooLarge(err) {
			log.Printf("[handleRosterUpload] FAILED - body too large")
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large."})
			return
		}
		log.Printf("[handleRosterUpload] FAILED - no file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large."})
			return
		}
		log.Printf("[handleRosterUpload] FAILED - reading upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process Excel file.", "details": err.Error()})
		return
	}

	upload := roster.Upload{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}
	log.Printf("[handleRosterUpload] received %s (%d bytes, %s)", upload.Filename, len(data), upload.MimeType)

	out, err := s.services.Roster.Upload(c.Request.Context(), upload)
	if err != nil {
		s.uploadFailed(c, err)
		return
	}

	result := out.Result
	switch result.Outcome {
	case domain.OutcomeRejected:
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed. See errors.",
			"errors":  result.Errors,
		})
	case domain.OutcomePartial:
		body := gin.H{
			"message": fmt.Sprintf("Uploaded and validated %d students; %d rows rejected.", result.Count, result.RejectedRows()),
			"data":    result.Records,
			"errors":  result.Errors,
		}
		if out.Committed {
			body["committed"] = true
		}
		c.JSON(http.StatusOK, body)
	default:
		body := gin.H{
			"message": fmt.Sprintf("Successfully uploaded and validated %d students.", result.Count),
			"data":    result.Records,
		}
		if out.Committed {
			body["committed"] = true
		}
		c.JSON(http.StatusOK, body)
	}
}

// uploadFailed maps pipeline and storage errors onto the upload contract
func (s *Server) uploadFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roster.ErrInvalidFileType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only .xlsx or .xls are allowed."})
	case errors.Is(err, roster.ErrNoDataRows):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or has no data rows."})
	case errors.Is(err, roster.ErrDuplicateColumn), errors.Is(err, roster.ErrTooManyRows):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.GetCode(err) == apperrors.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.GetCode(err) == apperrors.CodeValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("[handleRosterUpload] processing failed: %v", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process Excel file.", "details": err.Error()})
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// handleRosterTemplate serves GET /api/students/upload/template
func (s *Server) handleRosterTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := excel.WriteTemplate(&buf); err != nil {
		s.logger.Error("[handleRosterTemplate] failed to build template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build template."})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", templateFilename))
	c.Data(http.StatusOK, roster.MimeXLSX, buf.Bytes())
}

// handleRosterHelp serves GET /api/students/upload/help
func (s *Server) handleRosterHelp(c *gin.Context) {
	page := renderHelpPage(rosterHelpMarkdown(s.services.Roster.Ingestor().FieldMap()))
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleRosterHistory serves GET /api/students/upload/history
func (s *Server) handleRosterHistory(c *gin.Context) {
	entries, err := s.services.Roster.History(c.Request.Context(), queryInt(c, "limit", historyLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, entries)
}
