package models

import "time"

// Payment is the booking intent: it snapshots the appointment-to-be and is
// finalized exactly once by the gateway callback (pending -> paid|failed).
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID  string  `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;not null;default:'LKR'" json:"currency"`
	Status   string  `gorm:"size:10;not null;default:'pending'" json:"status"`

	CustomerName  string    `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string    `gorm:"size:20;not null" json:"customer_phone"`
	BarberID      uint      `gorm:"not null" json:"barber_id"`
	ServiceID     uint      `gorm:"not null" json:"service_id"`
	StartTime     time.Time `gorm:"not null" json:"start_time"`
	Notes         string    `gorm:"size:255" json:"notes"`

	// Set if and only if Status is paid.
	AppointmentID *uint `json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
}
