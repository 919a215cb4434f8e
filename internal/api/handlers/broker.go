package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/brokerdesk/lead-portal/internal/api/dto"
	"github.com/brokerdesk/lead-portal/internal/api/middleware"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BrokerHandler serves the broker self-service endpoints. All queries are
// scoped to the caller's own email from the token.
type BrokerHandler struct {
	leads  store.LeadStore
	logger *slog.Logger
}

func NewBrokerHandler(leads store.LeadStore, logger *slog.Logger) *BrokerHandler {
	return &BrokerHandler{leads: leads, logger: logger}
}

// Leads handles GET /api/broker/leads
func (h *BrokerHandler) Leads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if middleware.GetUserRole(ctx) != models.RoleBroker {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "This endpoint is for brokers only. Admins should use /api/leads"})
		return
	}

	leads, err := h.leads.List(ctx, store.LeadFilter{BrokerEmail: middleware.GetUserEmail(ctx)})
	if err != nil {
		h.logger.Error("listing broker leads", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch leads"})
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// Lead handles GET /api/broker/leads/{id}. The row is fetched by id and the
// owner compared afterwards; another broker's lead reads exactly like a
// missing one.
func (h *BrokerHandler) Lead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid lead ID"})
		return
	}

	ctx := r.Context()
	lead, err := h.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Lead not found or not assigned to you"})
			return
		}
		h.logger.Error("fetching broker lead", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch lead"})
		return
	}
	if lead.BrokerEmail != middleware.GetUserEmail(ctx) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Lead not found or not assigned to you"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Stats handles GET /api/broker/stats
func (h *BrokerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leads.StatsByBroker(r.Context(), middleware.GetUserEmail(r.Context()))
	if err != nil {
		h.logger.Error("computing broker stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch statistics"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
