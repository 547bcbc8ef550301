package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/config"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/middleware"
	"github.com/nallenclassics/barber-booking/internal/models"
	"github.com/nallenclassics/barber-booking/internal/validators"
)

const sessionTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

type BarberLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
		return
	}
	if !validators.IsValidPIN(req.PIN) {
		httperr.BadRequest(c, "invalid_pin", "PIN must be 4 to 8 digits.")
		return
	}

	var count int64
	h.db.Model(&models.Customer{}).Where("phone = ?", phone).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "phone_already_registered", "This phone number already has an account.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_pin", "Could not create the account.")
		return
	}

	customer := models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   phone,
		PinHash: string(hashed),
	}
	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Could not create the account.")
		return
	}

	token, err := h.issueSession(models.UserTypeCustomer, customer.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not start a session.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    customer.ID,
			"name":  customer.Name,
			"phone": customer.Phone,
			"type":  models.UserTypeCustomer,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	phone := validators.NormalizePhone(req.Phone)

	var customer models.Customer
	if err := h.db.Where("phone = ?", phone).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Phone or PIN is wrong.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PinHash), []byte(req.PIN)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Phone or PIN is wrong.")
		return
	}

	token, err := h.issueSession(models.UserTypeCustomer, customer.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not start a session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    customer.ID,
			"name":  customer.Name,
			"phone": customer.Phone,
			"type":  models.UserTypeCustomer,
		},
	})
}

func (h *AuthHandler) BarberLogin(c *gin.Context) {
	var req BarberLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var barber models.Barber
	err := h.db.Where("email = ? AND email <> ''", email).First(&barber).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(barber.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
		return
	}

	token, err := h.issueSession(models.UserTypeBarber, barber.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not start a session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    barber.ID,
			"name":  barber.Name,
			"email": barber.Email,
			"type":  models.UserTypeBarber,
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	switch userType {
	case models.UserTypeCustomer:
		var customer models.Customer
		if err := h.db.First(&customer, userID).Error; err != nil {
			httperr.Unauthorized(c, "session_invalid", "Account no longer exists.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id": customer.ID, "name": customer.Name, "phone": customer.Phone, "type": userType,
		})
	case models.UserTypeBarber:
		var barber models.Barber
		if err := h.db.First(&barber, userID).Error; err != nil {
			httperr.Unauthorized(c, "session_invalid", "Account no longer exists.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id": barber.ID, "name": barber.Name, "email": barber.Email, "type": userType,
		})
	default:
		httperr.Unauthorized(c, "authentication_required", "Log in first.")
	}
}

// Logout revokes the current session; the token dies with its jti row.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	if tokenID == "" {
		httperr.Unauthorized(c, "authentication_required", "Log in first.")
		return
	}

	if err := h.db.Where("token_id = ?", tokenID).Delete(&models.Session{}).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not log out.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged_out"})
}

// --------- JWT ---------

func (h *AuthHandler) issueSession(userType string, userID uint) (string, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	session := models.Session{
		TokenID:   tokenID,
		UserType:  userType,
		UserID:    userID,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := h.db.Create(&session).Error; err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":  userID,
		"type": userType,
		"jti":  tokenID,
		"exp":  now.Add(sessionTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
