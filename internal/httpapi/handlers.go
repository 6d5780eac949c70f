package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/a3tai/ncrp-intake/internal/complaint"
	"github.com/a3tai/ncrp-intake/internal/intake"
	"github.com/a3tai/ncrp-intake/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func errorJSON(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": string(intake.StatusError), "message": message})
}

func (s *Server) processPDF(c *gin.Context) {
	limit := s.cfg.MaxFileSize
	if limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorJSON(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		errorJSON(c, http.StatusBadRequest, "No file")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		errorJSON(c, http.StatusBadRequest, "No selected file")
		return
	}

	r := io.Reader(file)
	if limit > 0 {
		r = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "failed to read the uploaded file")
		return
	}
	if limit > 0 && int64(len(data)) > limit {
		errorJSON(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	out := s.intake.Process(c.Request.Context(), header.Filename, data)
	c.Header("X-Request-ID", out.RequestID)

	switch out.Status {
	case intake.StatusSuccess:
		c.JSON(http.StatusOK, gin.H{"status": string(out.Status), "data": []complaint.Record{out.Record}})
	case intake.StatusDuplicate:
		c.JSON(http.StatusConflict, gin.H{
			"status":  string(out.Status),
			"message": out.Message,
			"ack_no":  out.Record.AckNo,
		})
	default:
		code := http.StatusInternalServerError
		if errors.Is(out.Err, store.ErrMissingKey) {
			code = http.StatusUnprocessableEntity
		}
		errorJSON(c, code, out.Message)
	}
}

func (s *Server) getDatabase(c *gin.Context) {
	recs, err := s.intake.List(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list complaints")
		errorJSON(c, http.StatusInternalServerError, "failed to read the database")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": recs})
}

func complaintID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid complaint id")
		return 0, false
	}
	return id, true
}

func (s *Server) getComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	rec, err := s.intake.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "complaint not found")
	case err != nil:
		s.logger.WithError(err).WithField("id", id).Error("failed to read complaint")
		errorJSON(c, http.StatusInternalServerError, "failed to read the complaint")
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": rec})
	}
}

func (s *Server) deleteComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	if err := s.intake.Delete(c.Request.Context(), id); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("failed to delete complaint")
		errorJSON(c, http.StatusInternalServerError, "failed to delete the complaint")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) exportXLSX(c *gin.Context) {
	data, err := s.export.ExportXLSX(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("export failed")
		errorJSON(c, http.StatusInternalServerError, "failed to export complaints")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="complaints.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (s *Server) health(c *gin.Context) {
	n, err := s.intake.Count(c.Request.Context())
	body := gin.H{"status": "ok", "complaints": n}
	for k, v := range s.intake.Health() {
		body[k] = v
	}
	if err != nil {
		body["status"] = "degraded"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
