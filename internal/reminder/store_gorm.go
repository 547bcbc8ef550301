package reminder

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/models"
)

// GormStore reads due appointments straight off the appointments table.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Due(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var due []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("reminder_sent = ? AND start_time BETWEEN ? AND ?", false, from, to).
		Order("start_time").
		Find(&due).Error
	return due, err
}

func (s *GormStore) MarkSent(ctx context.Context, appointmentID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminder_sent", true).Error
}
