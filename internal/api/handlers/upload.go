package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/brokerdesk/lead-portal/internal/api/dto"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/importer"
	"github.com/brokerdesk/lead-portal/internal/store"
)

type UploadHandler struct {
	leads    store.LeadStore
	maxBytes int64
	dev      bool
	logger   *slog.Logger
}

func NewUploadHandler(leads store.LeadStore, maxBytes int64, dev bool, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{leads: leads, maxBytes: maxBytes, dev: dev, logger: logger}
}

type UploadResponse struct {
	Message       string        `json:"message"`
	LeadsImported int           `json:"leads_imported"`
	Leads         []models.Lead `json:"leads"`
}

type invalidRowsResponse struct {
	Error          string   `json:"error"`
	InvalidCount   int      `json:"invalid_count"`
	InvalidLeadIDs []string `json:"invalid_lead_ids"`
	Hint           string   `json:"hint"`
}

// Excel handles POST /api/upload/excel (admin only). The spreadsheet is
// spooled to a temp file that is removed on every exit path.
func (h *UploadHandler) Excel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "File too large. Maximum size is 50MB."})
			return
		}
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Only Excel files (.xlsx, .xls) are allowed"})
		return
	}

	tmp, err := os.CreateTemp("", "leads-*"+ext)
	if err != nil {
		h.logger.Error("creating temp upload file", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to process Excel file"})
		return
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		h.logger.Error("spooling upload", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to process Excel file"})
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("rewinding upload", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to process Excel file"})
		return
	}

	batch, err := importer.Parse(tmp)
	if err != nil {
		var invalid *importer.InvalidRowsError
		switch {
		case errors.Is(err, importer.ErrEmptyWorkbook):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Excel file is empty"})
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusBadRequest, invalidRowsResponse{
				Error:          "Some leads are missing required fields (Broker Email, Client Name)",
				InvalidCount:   len(invalid.LeadIDs),
				InvalidLeadIDs: invalid.LeadIDs,
				Hint:           "Check that all rows have Broker Email and Client Name filled in",
			})
		default:
			h.logger.Error("parsing workbook", "error", err, "filename", header.Filename)
			writeJSON(w, http.StatusBadRequest, h.errorResponse("Failed to process Excel file", err))
		}
		return
	}

	inserted, err := h.leads.CreateBatch(r.Context(), batch)
	if err != nil {
		h.logger.Error("inserting imported leads", "error", err, "count", len(batch))
		writeJSON(w, http.StatusInternalServerError, h.errorResponse("Failed to process Excel file", err))
		return
	}

	h.logger.Info("imported leads from spreadsheet", "filename", header.Filename, "count", len(inserted))
	writeJSON(w, http.StatusOK, UploadResponse{
		Message:       "Excel file uploaded and processed successfully",
		LeadsImported: len(inserted),
		Leads:         inserted,
	})
}

// errorResponse attaches the underlying detail only outside production.
func (h *UploadHandler) errorResponse(msg string, err error) dto.ErrorResponse {
	resp := dto.ErrorResponse{Error: msg}
	if h.dev {
		resp.Message = err.Error()
	}
	return resp
}
