package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickrent/internal/http/middleware"
	"quickrent/internal/repositories"
	"quickrent/internal/services"
)

// POST /api/landlords/payout-account (landlord)
func SetupPayoutAccount(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req services.PayoutSetupInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PayoutService{
		UserRepo:      repositories.UserRepository{},
		ApartmentRepo: repositories.ApartmentRepository{},
		ConfigRepo:    repositories.AdminConfigRepository{},
		Gateway:       payGateway,
	}
	code, err := svc.SetupLandlordPayout(c.Request.Context(), sess, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subaccount_code": code})
}

// GET /api/landlords/apartments (landlord)
func MyApartments(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	out, err := (repositories.ApartmentRepository{}).ListByLandlord(sess.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list apartments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartments": out})
}
