package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nallenclassics/barber-booking/internal/httperr"
)

// writeBookingError maps booking business codes onto HTTP statuses. Codes
// the table does not know fall through as 500 so a storage failure can
// never masquerade as a user mistake.
func writeBookingError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	switch code {
	case "invalid_slot":
		httperr.BadRequest(c, code, "Pick a valid slot inside operating hours.")
	case "slot_in_past":
		httperr.BadRequest(c, code, "That slot has already passed.")
	case "invalid_date":
		httperr.BadRequest(c, code, "Date must be YYYY-MM-DD.")
	case "invalid_barber":
		httperr.NotFound(c, code, "No such barber.")
	case "invalid_service":
		httperr.NotFound(c, code, "No such service.")
	case "appointment_not_found":
		httperr.NotFound(c, code, "No such appointment.")
	case "order_not_found":
		httperr.NotFound(c, code, "No such order.")
	case "slot_taken":
		httperr.Conflict(c, code, "That slot was just booked. Pick another one.")
	case "order_finalized":
		httperr.Conflict(c, code, "This order is already settled.")
	default:
		log.Println("booking error:", err)
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}
