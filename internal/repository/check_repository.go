package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CheckRepository struct {
	db *gorm.DB
}

func NewCheckRepository(db *gorm.DB) *CheckRepository {
	return &CheckRepository{db: db}
}

type ParkingCheck struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Direction      string         `gorm:"not null"`
	Commercial     bool           `gorm:"not null"`
	DisabledPermit bool           `gorm:"not null"`
	CanPark        bool           `gorm:"not null"`
	Heading        string         `gorm:"not null"`
	SignCount      int            `gorm:"not null"`
	RawItems       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time
}

func (r *CheckRepository) CreateCheck(ctx context.Context, check *ParkingCheck) error {
	if check.ID == uuid.Nil {
		check.ID = uuid.New()
	}
	if check.CreatedAt.IsZero() {
		check.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(check).Error
}

func (r *CheckRepository) FindChecks(ctx context.Context, canPark *bool, from, to *time.Time, limit, offset int) ([]ParkingCheck, error) {
	query := r.db.WithContext(ctx).Model(&ParkingCheck{})

	if canPark != nil {
		query = query.Where("can_park = ?", *canPark)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	query = query.Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var checks []ParkingCheck
	err := query.Find(&checks).Error
	return checks, err
}

func (r *CheckRepository) GetCheck(ctx context.Context, id uuid.UUID) (*ParkingCheck, error) {
	var check ParkingCheck
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&check).Error
	if err != nil {
		return nil, err
	}
	return &check, nil
}

func (r *CheckRepository) DeleteOldChecks(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("days must be positive, got %d", days)
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&ParkingCheck{})
	return result.RowsAffected, result.Error
}
