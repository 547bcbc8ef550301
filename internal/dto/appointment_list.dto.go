package dto

import "time"

// AppointmentDetailDTO is the staff view of a day's schedule.
type AppointmentDetailDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	BarberName    string    `json:"barber_name"`
	ServiceName   string    `json:"service_name"`
	Notes         string    `json:"notes"`
}

// AppointmentSlotDTO is the public view: intervals only, no identities.
type AppointmentSlotDTO struct {
	ID        uint      `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
