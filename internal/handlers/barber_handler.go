package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/cache"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/httpresp"
	"github.com/nallenclassics/barber-booking/internal/infra/storage"
	"github.com/nallenclassics/barber-booking/internal/media"
	"github.com/nallenclassics/barber-booking/internal/middleware"
	"github.com/nallenclassics/barber-booking/internal/models"
	"github.com/nallenclassics/barber-booking/internal/validators"
)

type BarberHandler struct {
	db       *gorm.DB
	catalog  *cache.Catalog
	uploader *storage.S3Uploader
}

func NewBarberHandler(db *gorm.DB, catalog *cache.Catalog, uploader *storage.S3Uploader) *BarberHandler {
	return &BarberHandler{db: db, catalog: catalog, uploader: uploader}
}

// --------- Requests ---------

type BarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`

	// Optional staff login credentials.
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.catalog.Barbers(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list barbers.")
		return
	}
	httpresp.List(c, barbers)
}

// Create adds a barber. The very first barber can be created without a
// session so a fresh install can bootstrap itself; after that a staff
// session is required.
func (h *BarberHandler) Create(c *gin.Context) {
	var count int64
	if err := h.db.Model(&models.Barber{}).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create the barber.")
		return
	}
	if count > 0 && !middleware.IsBarber(c) {
		httperr.Unauthorized(c, "authentication_required", "Staff session required.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// The bootstrap barber must be able to log in.
	if count == 0 && (req.Email == "" || req.Password == "") {
		httperr.BadRequest(c, "credentials_required", "The first barber needs an email and a password.")
		return
	}

	barber := models.Barber{
		Name:  strings.TrimSpace(req.Name),
		Phone: validators.NormalizePhone(req.Phone),
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validators.IsEmailDomainValid(email) {
			httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
			return
		}
		if len(req.Password) < 6 {
			httperr.BadRequest(c, "password_too_short", "Password must be at least 6 characters.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not create the barber.")
			return
		}
		barber.Email = email
		barber.PasswordHash = string(hashed)
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Could not create the barber.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	httpresp.Created(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Barber id must be numeric.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "No such barber.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	barber.Name = strings.TrimSpace(req.Name)
	barber.Phone = validators.NormalizePhone(req.Phone)

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validators.IsEmailDomainValid(email) {
			httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
			return
		}
		barber.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			httperr.BadRequest(c, "password_too_short", "Password must be at least 6 characters.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not update the barber.")
			return
		}
		barber.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not update the barber.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	httpresp.OK(c, barber)
}

// Delete refuses while appointments still reference the barber.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Barber id must be numeric.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "No such barber.")
		return
	}

	var booked int64
	if err := h.db.Model(&models.Appointment{}).Where("barber_id = ?", id).Count(&booked).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not delete the barber.")
		return
	}
	if booked > 0 {
		httperr.Conflict(c, "barber_has_appointments", "Cancel the barber's appointments first.")
		return
	}

	if err := h.db.Delete(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Could not delete the barber.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "barber_deleted"})
}

// UploadPhoto accepts a multipart image, re-encodes it as a small webp
// avatar and stores it on S3.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "photo_storage_unavailable", "Photo storage is not configured.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Barber id must be numeric.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "No such barber.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Send the image as the 'photo' form field.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not read the image.")
		return
	}
	defer file.Close()

	encoded, err := media.ProcessAvatar(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file is not a decodable image.")
		return
	}

	key := fmt.Sprintf("barbers/%d/avatar.webp", barber.ID)
	url, err := h.uploader.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the image.")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not save the photo URL.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
