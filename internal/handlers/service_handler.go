package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/cache"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/httpresp"
	"github.com/nallenclassics/barber-booking/internal/models"
)

const (
	minServiceMinutes = 5
	maxServiceMinutes = 240
)

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
}

func NewServiceHandler(db *gorm.DB, catalog *cache.Catalog) *ServiceHandler {
	return &ServiceHandler{db: db, catalog: catalog}
}

type ServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	Price           float64 `json:"price"`
}

func (r *ServiceRequest) validate(c *gin.Context) bool {
	if r.DurationMinutes < minServiceMinutes || r.DurationMinutes > maxServiceMinutes {
		httperr.BadRequest(c, "invalid_duration", "Duration must be between 5 and 240 minutes.")
		return false
	}
	if r.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return false
	}
	return true
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.Services(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	service := models.Service{
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "No such service.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	service.Name = strings.TrimSpace(req.Name)
	service.DurationMinutes = req.DurationMinutes
	service.Price = req.Price

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	httpresp.OK(c, service)
}

// Delete refuses while appointments still reference the service.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "No such service.")
		return
	}

	var booked int64
	if err := h.db.Model(&models.Appointment{}).Where("service_id = ?", id).Count(&booked).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not delete the service.")
		return
	}
	if booked > 0 {
		httperr.Conflict(c, "service_has_appointments", "Appointments still reference this service.")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "service_deleted"})
}
