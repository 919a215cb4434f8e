package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/brokerdesk/lead-portal/internal/api/dto"
	"github.com/brokerdesk/lead-portal/internal/api/middleware"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/brokerdesk/lead-portal/internal/timeline"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TimelineHandler struct {
	leads  store.LeadStore
	logger *slog.Logger
}

func NewTimelineHandler(leads store.LeadStore, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{leads: leads, logger: logger}
}

type TimelineResponse struct {
	LeadID          uuid.UUID            `json:"leadId"`
	ClientName      string               `json:"clientName"`
	PropertyAddress string               `json:"propertyAddress"`
	Status          string               `json:"status"`
	Milestones      []timeline.Milestone `json:"milestones"`
}

// Get handles GET /api/timeline/{leadId}
func (h *TimelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "leadId"))
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
		h.logger.Error("fetching lead timeline", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch timeline"})
		return
	}

	ctx := r.Context()
	if middleware.GetUserRole(ctx) == models.RoleBroker && lead.BrokerEmail != middleware.GetUserEmail(ctx) {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Access denied"})
		return
	}

	writeJSON(w, http.StatusOK, TimelineResponse{
		LeadID:          lead.ID,
		ClientName:      lead.ClientName,
		PropertyAddress: lead.PropertyAddress,
		Status:          lead.Status,
		Milestones:      timeline.Project(lead),
	})
}
