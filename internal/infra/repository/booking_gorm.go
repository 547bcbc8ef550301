package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("invalid_barber")
		}
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("invalid_service")
		}
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) BusyIntervals(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND start_time < ? AND end_time > ?",
			barberID, to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		intervals = append(intervals, domain.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}
	return intervals, nil
}

// --------------------------------------------------
// Reserve
// --------------------------------------------------

func (r *BookingGormRepository) ReserveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reserveTx(tx, ap)
	})
}

// reserveTx does the locked check-then-insert inside an open transaction.
// The gist exclusion constraint backs this up at the storage level.
func reserveTx(tx *gorm.DB, ap *models.Appointment) error {
	var count int64
	if err := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND start_time < ? AND end_time > ?",
			ap.BarberID, ap.EndTime, ap.StartTime,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_taken")
	}

	if err := tx.Create(ap).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Payment intent
// --------------------------------------------------

func (r *BookingGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BookingGormRepository) GetPaymentByOrderID(
	ctx context.Context,
	orderID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&p).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("order_not_found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *BookingGormRepository) FinalizeOrder(
	ctx context.Context,
	orderID string,
	paid bool,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var p models.Payment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&p).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness("order_not_found")
			}
			return err
		}

		if domain.Finalized(domain.PaymentStatus(p.Status)) {
			return httperr.ErrBusiness("order_finalized")
		}

		if !paid {
			p.Status = string(domain.PaymentFailed)
			return tx.Save(&p).Error
		}

		if err := reserveTx(tx, ap); err != nil {
			return err
		}

		p.Status = string(domain.PaymentPaid)
		p.AppointmentID = &ap.ID
		return tx.Save(&p).Error
	})
}

// --------------------------------------------------
// Appointment (staff)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
