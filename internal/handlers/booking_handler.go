package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/config"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/localclock"
	"github.com/nallenclassics/barber-booking/internal/middleware"
	"github.com/nallenclassics/barber-booking/internal/models"
	"github.com/nallenclassics/barber-booking/internal/payhere"
	usecase "github.com/nallenclassics/barber-booking/internal/usecase/booking"
)

type BookingHandler struct {
	db      *gorm.DB
	config  *config.Config
	gateway *payhere.Gateway

	availability *usecase.GetAvailability
	initiate     *usecase.InitiateBooking
	confirm      *usecase.ConfirmPayment
}

func NewBookingHandler(
	db *gorm.DB,
	cfg *config.Config,
	gateway *payhere.Gateway,
	availability *usecase.GetAvailability,
	initiate *usecase.InitiateBooking,
	confirm *usecase.ConfirmPayment,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		config:       cfg,
		gateway:      gateway,
		availability: availability,
		initiate:     initiate,
		confirm:      confirm,
	}
}

// --------- Requests ---------

type InitiateBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // "HH:MM"
	Notes     string `json:"notes"`
}

// --------- Handlers ---------

// PublicConfig tells the frontend what it needs to render the booking form.
func (h *BookingHandler) PublicConfig(c *gin.Context) {
	hours := h.config.Hours()
	c.JSON(http.StatusOK, gin.H{
		"booking_fee_lkr": h.config.BookingFee,
		"currency":        h.config.Currency,
		"open_time":       hours.OpenHHMM(),
		"close_time":      hours.CloseHHMM(),
		"slot_minutes":    hours.SlotMinutes,
	})
}

func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	barberID := queryUint(c, "barber_id")
	serviceID := queryUint(c, "service_id")
	if date == "" || barberID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "missing_parameters", "Pass date, barber_id and service_id.")
		return
	}
	if _, _, err := localclock.DayWindow(date, h.config.TZOffsetMinutes); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), date, barberID, serviceID, time.Now())
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

func (h *BookingHandler) InitiateBooking(c *gin.Context) {
	var req InitiateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := localclock.ToInstant(req.Date, req.StartTime, h.config.TZOffsetMinutes)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use date YYYY-MM-DD and start_time HH:MM.")
		return
	}

	// The booking snapshot comes from the logged-in customer, not the
	// request body.
	customerID := c.GetUint(middleware.ContextUserID)
	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.Unauthorized(c, "session_invalid", "Account no longer exists.")
		return
	}

	res, err := h.initiate.Execute(c.Request.Context(), usecase.InitiateInput{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		StartTime:     start,
		Notes:         req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	if !res.PaymentRequired {
		c.JSON(http.StatusCreated, gin.H{
			"payment_required": false,
			"order_id":         res.OrderID,
			"appointment_id":   res.AppointmentID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment_required": true,
		"order_id":         res.OrderID,
		"payhere_url":      res.CheckoutURL,
		"params":           res.Params,
	})
}

// PayHereNotify is the server-to-server settlement callback. PayHere
// retries until it sees a 200, so everything past the order_id check
// answers 200 no matter what the outcome was.
func (h *BookingHandler) PayHereNotify(c *gin.Context) {
	orderID := c.PostForm("order_id")
	if orderID == "" {
		httperr.BadRequest(c, "missing_order_id", "order_id is required.")
		return
	}

	statusCode := c.PostForm("status_code")
	sigOK := h.gateway.VerifyNotification(
		c.PostForm("merchant_id"),
		orderID,
		c.PostForm("payhere_amount"),
		c.PostForm("payhere_currency"),
		statusCode,
		c.PostForm("md5sig"),
	)
	if !sigOK {
		log.Printf("payhere notify signature check failed for order %s", orderID)
	}

	res, err := h.confirm.Execute(c.Request.Context(), usecase.ConfirmInput{
		OrderID:     orderID,
		StatusCode:  statusCode,
		SignatureOK: sigOK,
	})
	if err != nil {
		// 500 makes PayHere redeliver; confirmation is idempotent.
		log.Printf("payhere notify for order %s failed: %v", orderID, err)
		httperr.Internal(c, "internal_error", "Could not process the notification.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(res.Outcome)})
}

// PayHereReturn lands the customer back on the site after checkout.
func (h *BookingHandler) PayHereReturn(c *gin.Context) {
	c.Redirect(http.StatusFound, "/?payment=success")
}

func (h *BookingHandler) PayHereCancel(c *gin.Context) {
	c.Redirect(http.StatusFound, "/?payment=cancelled")
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
