package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickrent/internal/domain"
)

// RespondDomainError maps the domain error taxonomy to HTTP responses in one
// place so handlers stay thin.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalidInput(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsApartmentNotFound(err), domain.IsBookingNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsDuplicatePendingBooking(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsLandlordPayoutNotConfigured(err):
		RespondError(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case domain.IsGateway(err):
		RespondError(c, http.StatusBadGateway, "payment gateway unavailable", err)
	case domain.IsPersistence(err):
		RespondError(c, http.StatusInternalServerError, "storage unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal error", nil)
	}
}
