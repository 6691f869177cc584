package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dkaledin/teamtrack/internal/report"
)

// parseReportDate reads the optional ?date=YYYY-MM-DD parameter. A zero
// time means "now".
func parseReportDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

func (s *Server) getReportHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := parseReportDate(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	mode := report.ParseMode(r.URL.Query().Get("mode"))

	rep, err := s.reports.Build(r.Context(), ref, mode)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"report": rep})
}

// downloadExportHandler streams the day export as a text attachment.
func (s *Server) downloadExportHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := parseReportDate(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	content, fileName, err := s.reports.ExportText(r.Context(), ref)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

// deliverExportHandler pushes the export somewhere: delivery "s3"
// uploads the artifact and returns a presigned URL, delivery "email"
// mails it to the recipient.
func (s *Server) deliverExportHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Delivery  string `json:"delivery"`
		Date      string `json:"date"`
		Recipient string `json:"recipient"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	var ref time.Time
	if input.Date != "" {
		var err error
		ref, err = time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	switch input.Delivery {
	case "s3", "":
		result, err := s.reports.Export(r.Context(), ref)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, envelope{"export": result})
	case "email":
		recipient := input.Recipient
		if recipient == "" {
			recipient = s.config.AdminEmail
		}
		if err := s.reports.EmailExport(r.Context(), ref, recipient); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, envelope{"status": "sent", "recipient": recipient})
	default:
		s.writeError(w, http.StatusBadRequest, `delivery must be "s3" or "email"`)
	}
}
