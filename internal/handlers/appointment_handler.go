package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/config"
	"github.com/nallenclassics/barber-booking/internal/dto"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/httpresp"
	"github.com/nallenclassics/barber-booking/internal/localclock"
	"github.com/nallenclassics/barber-booking/internal/middleware"
	"github.com/nallenclassics/barber-booking/internal/models"
	usecase "github.com/nallenclassics/barber-booking/internal/usecase/booking"
)

type AppointmentHandler struct {
	db     *gorm.DB
	config *config.Config
	create *usecase.DirectCreate
	cancel *usecase.CancelAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	cfg *config.Config,
	create *usecase.DirectCreate,
	cancel *usecase.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:     db,
		config: cfg,
		create: create,
		cancel: cancel,
	}
}

// --------- Requests ---------

type DirectCreateRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	BarberID      uint   `json:"barber_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"` // "HH:MM"
	Notes         string `json:"notes"`
}

// --------- Handlers ---------

// ListByDate returns the day's schedule. Staff sessions see full detail;
// everyone else only gets the busy intervals.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Pass ?date=YYYY-MM-DD.")
		return
	}

	from, to, err := localclock.DayWindow(date, h.config.TZOffsetMinutes)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	var appointments []models.Appointment
	err = h.db.WithContext(c.Request.Context()).
		Preload("Barber").
		Preload("Service").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time").
		Find(&appointments).Error
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list appointments.")
		return
	}

	if middleware.IsBarber(c) {
		out := make([]dto.AppointmentDetailDTO, 0, len(appointments))
		for _, ap := range appointments {
			out = append(out, dto.AppointmentDetailDTO{
				ID:            ap.ID,
				StartTime:     ap.StartTime,
				EndTime:       ap.EndTime,
				CustomerName:  ap.CustomerName,
				CustomerPhone: ap.CustomerPhone,
				BarberName:    ap.Barber.Name,
				ServiceName:   ap.Service.Name,
				Notes:         ap.Notes,
			})
		}
		httpresp.List(c, out)
		return
	}

	out := make([]dto.AppointmentSlotDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentSlotDTO{
			ID:        ap.ID,
			StartTime: ap.StartTime,
			EndTime:   ap.EndTime,
		})
	}
	httpresp.List(c, out)
}

// Create books directly from behind the counter, skipping payment.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req DirectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := localclock.ToInstant(req.Date, req.StartTime, h.config.TZOffsetMinutes)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use date YYYY-MM-DD and start_time HH:MM.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.DirectCreateInput{
		ActorID:       c.GetUint(middleware.ContextUserID),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		StartTime:     start,
		Notes:         req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	actorID := c.GetUint(middleware.ContextUserID)
	if err := h.cancel.Execute(c.Request.Context(), actorID, uint(id)); err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment_cancelled"})
}
