package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brokerdesk/lead-portal/internal/api/dto"
	"github.com/brokerdesk/lead-portal/internal/api/middleware"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/importer"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type LeadHandler struct {
	leads  store.LeadStore
	logger *slog.Logger
}

func NewLeadHandler(leads store.LeadStore, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, logger: logger}
}

// mutableLeadStringFields is the allow-list for admin lead updates. Anything
// outside it (plus the date columns below) is rejected rather than passed
// through to storage.
var mutableLeadStringFields = map[string]bool{
	"lead_id":          true,
	"broker_email":     true,
	"client_name":      true,
	"property_address": true,
	"status":           true,
}

var mutableLeadDateFields = map[string]bool{
	"expected_offer_accept_date":        true,
	"actual_offer_accept_date":          true,
	"expected_title_date":               true,
	"actual_title_date":                 true,
	"expected_inspection_order_date":    true,
	"actual_inspection_order_date":      true,
	"expected_inspection_complete_date": true,
	"actual_inspection_complete_date":   true,
	"expected_appraisal_order_date":     true,
	"actual_appraisal_order_date":       true,
	"expected_appraisal_complete_date":  true,
	"actual_appraisal_complete_date":    true,
	"expected_clear_to_close_date":      true,
	"actual_clear_to_close_date":        true,
	"expected_closing_scheduled_date":   true,
	"actual_closing_scheduled_date":     true,
	"expected_close_date":               true,
	"actual_close_date":                 true,
}

// validateLeadUpdates filters a raw update payload against the allow-list,
// coercing date strings and checking the status enum. The id and creation
// timestamp are silently dropped; any other unknown key is an error.
func validateLeadUpdates(payload map[string]interface{}) (map[string]interface{}, map[string]string) {
	updates := make(map[string]interface{})
	errs := make(map[string]string)

	for key, value := range payload {
		switch {
		case key == "id" || key == "created_at" || key == "updated_at":
			// Immutable; ignore.
		case mutableLeadStringFields[key]:
			s, ok := value.(string)
			if !ok {
				errs[key] = "Must be a string"
				continue
			}
			if key == "status" && !models.IsValidLeadStatus(s) {
				errs[key] = fmt.Sprintf("Unknown status %q", s)
				continue
			}
			updates[key] = s
		case mutableLeadDateFields[key]:
			if value == nil {
				updates[key] = nil
				continue
			}
			s, ok := value.(string)
			if !ok {
				errs[key] = "Must be a date string or null"
				continue
			}
			t := importer.ParseDate(s)
			if t == nil {
				errs[key] = fmt.Sprintf("Unparseable date %q", s)
				continue
			}
			updates[key] = t
		default:
			errs[key] = "Unknown field"
		}
	}

	return updates, errs
}

// List handles GET /api/leads. Brokers only ever see their own rows; the
// owner filter comes from the token, never from query parameters.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.LeadFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if middleware.GetUserRole(r.Context()) == models.RoleBroker {
		filter.BrokerEmail = middleware.GetUserEmail(r.Context())
	}

	leads, err := h.leads.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("listing leads", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch leads"})
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// Get handles GET /api/leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid lead ID"})
		return
	}

	lead, err := h.leads.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Lead not found"})
			return
		}
		h.logger.Error("fetching lead", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch lead"})
		return
	}

	ctx := r.Context()
	if middleware.GetUserRole(ctx) == models.RoleBroker && lead.BrokerEmail != middleware.GetUserEmail(ctx) {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Access denied"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Update handles PUT /api/leads/{id} (admin only)
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid lead ID"})
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	updates, errs := validateLeadUpdates(payload)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}
	if len(updates) == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No updatable fields provided"})
		return
	}

	lead, err := h.leads.Update(r.Context(), id, updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Lead not found"})
			return
		}
		h.logger.Error("updating lead", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update lead"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Delete handles DELETE /api/leads/{id} (admin only)
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid lead ID"})
		return
	}

	if err := h.leads.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Lead not found"})
			return
		}
		h.logger.Error("deleting lead", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete lead"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Lead deleted successfully"})
}
