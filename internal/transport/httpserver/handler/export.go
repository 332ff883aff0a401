package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"money-tracker-go/internal/domain/ledger"
	"money-tracker-go/internal/export"
	"money-tracker-go/internal/integrations/mail"
	"money-tracker-go/internal/transport/httpserver/middleware"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type emailExportRequest struct {
	To      string   `json:"to"`
	Subject string   `json:"subject"`
	Formats []string `json:"formats"`
}

func (h *Handlers) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r, "export.xlsx")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		h.writeDomainError(w, "export.xlsx: render failed", err)
		return
	}
	writeFile(w, h.fileName("xlsx"), contentTypeXLSX, buf.Bytes())
}

func (h *Handlers) ExportPDF(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r, "export.pdf")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, h.report(r, records)); err != nil {
		h.writeDomainError(w, "export.pdf: render failed", err)
		return
	}
	writeFile(w, h.fileName("pdf"), contentTypePDF, buf.Bytes())
}

func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	records, ok := h.records(w, r, "export.csv")
	if !ok {
		return
	}

	table, err := export.TableFor(records, collection)
	if err != nil {
		h.writeDomainError(w, "export.csv: unknown collection", err, "collection", collection)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		h.writeDomainError(w, "export.csv: render failed", err)
		return
	}
	writeFile(w, fmt.Sprintf("%s-%s.csv", strings.ToLower(table.Name), h.now().UTC().Format("2006-01-02")), contentTypeCSV, buf.Bytes())
}

// ExportEmail mails the report. Formats default to pdf and xlsx.
func (h *Handlers) ExportEmail(w http.ResponseWriter, r *http.Request) {
	var req emailExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.To) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "to is required")
		return
	}
	if !h.Mail.Enabled() {
		h.writeDomainError(w, "export.email: mail disabled", mail.ErrDisabled)
		return
	}
	formats := req.Formats
	if len(formats) == 0 {
		formats = []string{"pdf", "xlsx"}
	}

	records, ok := h.records(w, r, "export.email")
	if !ok {
		return
	}

	attachments := make([]mail.Attachment, 0, len(formats))
	for _, format := range formats {
		var (
			buf         bytes.Buffer
			contentType string
			err         error
		)
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "pdf":
			contentType = contentTypePDF
			err = export.WritePDF(&buf, h.report(r, records))
		case "xlsx":
			contentType = contentTypeXLSX
			err = export.WriteXLSX(&buf, records)
		default:
			writeError(w, http.StatusBadRequest, "invalid_request", "unsupported format "+format)
			return
		}
		if err != nil {
			h.writeDomainError(w, "export.email: render failed", err, "format", format)
			return
		}
		attachments = append(attachments, mail.Attachment{
			Filename:    h.fileName(strings.ToLower(strings.TrimSpace(format))),
			ContentType: contentType,
			Content:     buf.Bytes(),
		})
	}

	err := h.Mail.SendReport(mail.Report{
		To:          req.To,
		Subject:     req.Subject,
		Body:        "Your Money Tracker export is attached.",
		Attachments: attachments,
	})
	if err != nil {
		h.writeDomainError(w, "export.email: send failed", err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"sent": true, "attachments": len(attachments)})
}

func (h *Handlers) report(r *http.Request, records ledger.State) export.Report {
	currency := ""
	if id, ok := middleware.ProfileIDFromContext(r.Context()); ok {
		if preferences, err := h.Tracker.Preferences(r.Context(), id); err == nil {
			currency = preferences.Currency
		}
	}
	return export.Report{
		Currency:    currency,
		GeneratedAt: h.now().UTC(),
		Records:     records,
		Prices:      h.currentPrices(),
	}
}

func (h *Handlers) fileName(extension string) string {
	return fmt.Sprintf("money-tracker-%s.%s", h.now().UTC().Format("2006-01-02"), extension)
}

func writeFile(w http.ResponseWriter, name, contentType string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
