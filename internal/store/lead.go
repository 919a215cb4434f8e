package store

import (
	"context"
	"errors"
	"strings"

	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormLeadStore struct {
	db *gorm.DB
}

func NewGormLeadStore(db *gorm.DB) *GormLeadStore {
	return &GormLeadStore{db: db}
}

func (s *GormLeadStore) List(ctx context.Context, filter LeadFilter) ([]models.Lead, error) {
	query := s.db.WithContext(ctx).Model(&models.Lead{})

	if filter.BrokerEmail != "" {
		query = query.Where("broker_email = ?", filter.BrokerEmail)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(client_name) LIKE ? OR LOWER(property_address) LIKE ? OR LOWER(lead_id) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var leads []models.Lead
	err := query.Order("created_at DESC").Find(&leads).Error
	return leads, err
}

func (s *GormLeadStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (s *GormLeadStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Lead, error) {
	var lead models.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&lead).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *GormLeadStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateBatch inserts all rows in one transaction; a failure inserts nothing.
func (s *GormLeadStore) CreateBatch(ctx context.Context, leads []models.Lead) ([]models.Lead, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&leads).Error
	})
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *GormLeadStore) StatsByBroker(ctx context.Context, brokerEmail string) (*LeadStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Lead{}).
		Select("status, COUNT(*) as count").
		Where("broker_email = ?", brokerEmail).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &LeadStats{ByStatus: make(map[string]int64)}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}
	return stats, nil
}
