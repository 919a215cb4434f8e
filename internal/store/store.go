package store

import (
	"context"
	"errors"

	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// LeadFilter narrows a lead listing. BrokerEmail is set by the caller from
// the authenticated identity, never from request input.
type LeadFilter struct {
	BrokerEmail string
	Status      string
	Search      string
}

// LeadStats is the per-broker status breakdown.
type LeadStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LeadStore interface {
	List(ctx context.Context, filter LeadFilter) ([]models.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateBatch(ctx context.Context, leads []models.Lead) ([]models.Lead, error)
	StatsByBroker(ctx context.Context, brokerEmail string) (*LeadStats, error)
}

// Compile-time interface satisfaction checks
var (
	_ UserStore = (*GormUserStore)(nil)
	_ LeadStore = (*GormLeadStore)(nil)
)
