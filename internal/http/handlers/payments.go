package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickrent/internal/domain"
	"quickrent/internal/gateway"
	"quickrent/internal/http/middleware"
	"quickrent/internal/repositories"
	"quickrent/internal/services"
)

func reconcileService() services.ReconcileService {
	return services.ReconcileService{
		BookingRepo:   repositories.BookingRepository{},
		ApartmentRepo: repositories.ApartmentRepository{},
		ConfigRepo:    repositories.AdminConfigRepository{},
		RetryDelay:    100 * time.Millisecond,
	}
}

// POST /api/payments/webhook — Paystack's server-to-server confirmation.
// Unauthenticated; when a webhook secret is configured the signature header
// is required instead.
func PaystackWebhook(c *gin.Context) {
	start := time.Now()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable body", err)
		return
	}

	if env.PaystackSecretKey != "" {
		sig := c.GetHeader("x-paystack-signature")
		if !gateway.VerifyWebhookSignature(env.PaystackSecretKey, body, sig) {
			confirmationsTotal.WithLabelValues(services.ChannelWebhook, "rejected").Inc()
			RespondError(c, http.StatusUnauthorized, "invalid webhook signature", nil)
			return
		}
	}

	var ev gateway.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		RespondError(c, http.StatusBadRequest, "malformed webhook payload", err)
		return
	}
	defer func() {
		webhookLatency.WithLabelValues(ev.Event).Observe(time.Since(start).Seconds())
	}()

	if ev.Event != gateway.EventChargeSuccess {
		// Acknowledge so the gateway stops redelivering events we do not act on.
		zap.L().Info("ignoring webhook event", zap.String("event", ev.Event))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if ev.Data.Metadata.ApartmentID <= 0 || (ev.Data.Customer.Email == "" && ev.Data.Metadata.UserID <= 0) {
		confirmationsTotal.WithLabelValues(services.ChannelWebhook, "invalid").Inc()
		RespondError(c, http.StatusBadRequest, "webhook missing payer identity or apartment", nil)
		return
	}

	b, err := reconcileService().ConfirmFromWebhook(ev)
	if err != nil {
		if domain.IsBookingNotFound(err) {
			confirmationsTotal.WithLabelValues(services.ChannelWebhook, "unmatched").Inc()
		} else {
			confirmationsTotal.WithLabelValues(services.ChannelWebhook, "error").Inc()
		}
		RespondDomainError(c, err)
		return
	}

	confirmationsTotal.WithLabelValues(services.ChannelWebhook, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"status": b.Status, "booking_id": b.ID})
}

// POST /api/payments/confirm — the in-app success callback. Safe to deliver
// after, before, or instead of the webhook.
func ConfirmPayment(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req struct {
		ApartmentID int64 `json:"apartment_id"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.ApartmentID <= 0 {
		RespondError(c, http.StatusBadRequest, "apartment_id is required", nil)
		return
	}

	b, err := reconcileService().ConfirmFromClient(sess, req.ApartmentID)
	if err != nil {
		if domain.IsBookingNotFound(err) {
			confirmationsTotal.WithLabelValues(services.ChannelClient, "unmatched").Inc()
		} else {
			confirmationsTotal.WithLabelValues(services.ChannelClient, "error").Inc()
		}
		RespondDomainError(c, err)
		return
	}

	confirmationsTotal.WithLabelValues(services.ChannelClient, "ok").Inc()
	c.JSON(http.StatusOK, b)
}

// POST /api/payments/cancel — the tenant backed out of the hosted page. The
// booking stays pending; nothing is recorded against it.
func CancelPayment(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req struct {
		ApartmentID int64 `json:"apartment_id"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	zap.L().Info("payment cancelled by tenant",
		zap.Int64("tenant_id", sess.UserID),
		zap.Int64("apartment_id", req.ApartmentID),
	)
	c.JSON(http.StatusOK, gin.H{"status": "payment not confirmed"})
}
