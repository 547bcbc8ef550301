package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Snapshot taken at booking time, not a live customer reference.
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`

	BarberID uint   `gorm:"not null;index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	// Derived at creation (start + service duration), stored, never recomputed.
	EndTime time.Time `gorm:"not null" json:"end_time"`

	Notes string `gorm:"size:255" json:"notes"`

	ReminderSent bool `gorm:"not null;default:false" json:"reminder_sent"`

	CreatedAt time.Time `json:"created_at"`
}
