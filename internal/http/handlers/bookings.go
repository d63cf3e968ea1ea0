package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quickrent/internal/http/middleware"
	"quickrent/internal/repositories"
	"quickrent/internal/services"
)

func bookingService() services.BookingService {
	return services.BookingService{
		BookingRepo:   repositories.BookingRepository{},
		ApartmentRepo: repositories.ApartmentRepository{},
		ConfigRepo:    repositories.AdminConfigRepository{},
		Gateway:       payGateway,
	}
}

// POST /api/bookings (tenant)
func CreateBooking(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req struct {
		ApartmentID int64 `json:"apartment_id"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService().CreateBooking(sess, req.ApartmentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// POST /api/bookings/:id/pay (tenant) — builds the payment intent and opens a
// hosted charge. The booking stays pending until a confirmation arrives.
func StartPayment(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	intent, auth, err := bookingService().StartPayment(c.Request.Context(), sess, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_id":        intent.BookingID,
		"total_amount":      intent.TotalAmount,
		"commission":        intent.Commission,
		"commission_rate":   intent.CommissionRate,
		"reference":         auth.Reference,
		"authorization_url": auth.AuthorizationURL,
	})
}

// GET /api/bookings/mine (tenant)
func MyBookings(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	out, err := (repositories.BookingRepository{}).ListByTenant(sess.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id/receipt (tenant, paid bookings only)
func BookingReceipt(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	svc := services.ReceiptService{BookingRepo: repositories.BookingRepository{}}
	pdf, filename, err := svc.GenerateReceipt(sess, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
