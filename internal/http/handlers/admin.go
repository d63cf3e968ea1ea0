package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickrent/internal/domain"
	"quickrent/internal/http/middleware"
	"quickrent/internal/repositories"
	"quickrent/internal/services"
)

// GET /api/admin/config
func GetAdminConfig(c *gin.Context) {
	rate, err := (repositories.AdminConfigRepository{}).GetRate()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load config", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission_rate": rate})
}

// PUT /api/admin/config — rate changes apply to confirmations from now on;
// already-paid bookings keep the rate they were charged at.
func UpdateAdminConfig(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req struct {
		CommissionRate float64 `json:"commission_rate"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.CommissionRate < 0 || req.CommissionRate > 100 {
		RespondDomainError(c, domain.InvalidInputError{Field: "commission_rate", Msg: "must be between 0 and 100"})
		return
	}

	if err := (repositories.AdminConfigRepository{}).SetRate(req.CommissionRate); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save config", err)
		return
	}

	zap.L().Info("commission rate updated",
		zap.Float64("commission_rate", req.CommissionRate),
		zap.Int64("admin_id", sess.UserID),
	)
	c.JSON(http.StatusOK, gin.H{"commission_rate": req.CommissionRate})
}

// GET /api/admin/reports/summary
func RevenueSummaryReport(c *gin.Context) {
	svc := services.ReportsService{BookingRepo: repositories.BookingRepository{}}
	sum, err := svc.Summary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GET /api/admin/reports/monthly
func MonthlyRevenueReport(c *gin.Context) {
	svc := services.ReportsService{BookingRepo: repositories.BookingRepository{}}
	rows, err := svc.Monthly()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": rows})
}
