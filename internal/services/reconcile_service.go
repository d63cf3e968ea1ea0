package services

import (
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
	"quickrent/internal/gateway"
	"quickrent/internal/repositories"
)

// ConfirmationRef identifies who a gateway success signal belongs to. The
// webhook channel carries the payer email (and sometimes the user id echoed
// back in metadata); the client callback carries the session identity.
type ConfirmationRef struct {
	TenantID    int64
	Email       string
	ApartmentID int64
	Reference   string
	Channel     string
}

const (
	ChannelWebhook = "webhook"
	ChannelClient  = "client"
)

// ReconcileService applies gateway-reported payment successes to bookings
// exactly once. The two confirmation channels race and may each be delivered
// more than once; the conditional status update is the sole correctness
// mechanism. This component never initiates a charge.
type ReconcileService struct {
	BookingRepo   repositories.BookingRepository
	ApartmentRepo repositories.ApartmentRepository
	ConfigRepo    repositories.AdminConfigRepository

	// Seams for tests; production paths fall through to the repositories.
	FindBooking   func(ref ConfirmationRef) (models.Booking, error)
	LoadApartment func(id int64) (models.Apartment, error)
	LoadRate      func() (float64, error)
	MarkPaid      func(id int64, rec models.PaymentRecord) (bool, error)
	Reload        func(id int64) (models.Booking, error)

	// RetryDelay spaces the bounded retries around the conditional update.
	RetryDelay time.Duration
}

const markPaidAttempts = 3

// ConfirmFromWebhook handles the gateway's server-to-server confirmation.
func (s ReconcileService) ConfirmFromWebhook(ev gateway.WebhookEvent) (models.Booking, error) {
	ref := ConfirmationRef{
		TenantID:    ev.Data.Metadata.UserID,
		Email:       strings.ToLower(strings.TrimSpace(ev.Data.Customer.Email)),
		ApartmentID: ev.Data.Metadata.ApartmentID,
		Reference:   ev.Data.Reference,
		Channel:     ChannelWebhook,
	}
	return s.confirm(ref)
}

// ConfirmFromClient handles the in-app success callback, which has no gateway
// reference and is trusted only for the identity already in the session.
func (s ReconcileService) ConfirmFromClient(sess models.Session, apartmentID int64) (models.Booking, error) {
	ref := ConfirmationRef{
		TenantID:    sess.UserID,
		Email:       strings.ToLower(strings.TrimSpace(sess.Email)),
		ApartmentID: apartmentID,
		Channel:     ChannelClient,
	}
	return s.confirm(ref)
}

func (s ReconcileService) confirm(ref ConfirmationRef) (models.Booking, error) {
	log := zap.L().With(
		zap.String("channel", ref.Channel),
		zap.Int64("apartment_id", ref.ApartmentID),
		zap.String("reference", ref.Reference),
	)

	b, err := s.findBooking(ref)
	if err != nil {
		if err == sql.ErrNoRows {
			// Reported, not retried: guessing a different booking on a second
			// attempt risks attributing the payment to the wrong record.
			log.Error("unmatched payment confirmation, manual reconciliation required",
				zap.String("email", ref.Email), zap.Int64("tenant_id", ref.TenantID))
			return models.Booking{}, domain.BookingNotFoundError{TenantRef: ref.tenantRef(), ApartmentID: ref.ApartmentID, Err: err}
		}
		return models.Booking{}, domain.PersistenceError{Op: "match booking", Err: err}
	}

	if b.Status == models.BookingPaid {
		// The other channel (or an earlier delivery of this one) already
		// applied the transition. Do not recompute or re-record anything.
		log.Info("confirmation already applied, no-op", zap.Int64("booking_id", b.ID))
		return b, nil
	}

	apt, err := s.loadApartment(b.ApartmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Error("apartment missing at confirmation time", zap.Int64("booking_id", b.ID))
			return models.Booking{}, domain.ApartmentNotFoundError{ApartmentID: b.ApartmentID, Err: err}
		}
		return models.Booking{}, domain.PersistenceError{Op: "load apartment", Err: err}
	}

	rate, err := s.loadRate()
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "load commission rate", Err: err}
	}

	// Commission uses the rate and price in effect now, not at booking time.
	charge, err := ComputeCharge(apt.PricePesewas, rate)
	if err != nil {
		return models.Booking{}, err
	}

	rec := models.PaymentRecord{
		PaidAmount:     charge.TotalAmount,
		BasePrice:      apt.PricePesewas,
		Commission:     charge.Commission,
		CommissionRate: rate,
		SubaccountCode: apt.SubaccountCode,
	}

	won, err := s.markPaidWithRetry(b.ID, rec)
	if err != nil {
		log.Error("failed to persist payment confirmation", zap.Int64("booking_id", b.ID), zap.Error(err))
		return models.Booking{}, err
	}

	if !won {
		// Lost the race: the concurrent confirmation must have flipped the
		// status. Re-read to report the winning record.
		cur, err := s.reload(b.ID)
		if err != nil {
			return models.Booking{}, domain.PersistenceError{Op: "reload booking", Err: err}
		}
		if cur.Status == models.BookingPaid {
			log.Info("lost confirmation race, no-op", zap.Int64("booking_id", b.ID))
			return cur, nil
		}
		return models.Booking{}, domain.PersistenceError{Op: "mark booking paid"}
	}

	log.Info("booking marked paid",
		zap.Int64("booking_id", b.ID),
		zap.Int64("paid_amount", rec.PaidAmount),
		zap.Int64("commission", rec.Commission),
		zap.Float64("commission_rate", rec.CommissionRate),
	)

	cur, err := s.reload(b.ID)
	if err != nil {
		// The transition committed; fall back to assembling the result.
		b.Status = models.BookingPaid
		b.PaidAmount = rec.PaidAmount
		b.BasePrice = rec.BasePrice
		b.Commission = rec.Commission
		b.CommissionRate = rec.CommissionRate
		b.SubaccountCode = rec.SubaccountCode
		return b, nil
	}
	return cur, nil
}

// markPaidWithRetry retries transient store failures around the conditional
// update. The update is idempotent by construction (keyed on status pending),
// so a duplicate attempt is safe; losing the only success signal is not.
func (s ReconcileService) markPaidWithRetry(id int64, rec models.PaymentRecord) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < markPaidAttempts; attempt++ {
		if attempt > 0 && s.RetryDelay > 0 {
			time.Sleep(s.RetryDelay)
		}
		won, err := s.markPaid(id, rec)
		if err == nil {
			return won, nil
		}
		lastErr = err
	}
	return false, domain.PersistenceError{Op: "mark booking paid", Err: lastErr}
}

func (ref ConfirmationRef) tenantRef() string {
	if ref.Email != "" {
		return ref.Email
	}
	return ""
}

func (s ReconcileService) findBooking(ref ConfirmationRef) (models.Booking, error) {
	if s.FindBooking != nil {
		return s.FindBooking(ref)
	}
	if ref.TenantID > 0 {
		return s.BookingRepo.LatestByTenant(ref.TenantID, ref.ApartmentID)
	}
	return s.BookingRepo.LatestByEmail(ref.Email, ref.ApartmentID)
}

func (s ReconcileService) loadApartment(id int64) (models.Apartment, error) {
	if s.LoadApartment != nil {
		return s.LoadApartment(id)
	}
	return s.ApartmentRepo.GetByID(id)
}

func (s ReconcileService) loadRate() (float64, error) {
	if s.LoadRate != nil {
		return s.LoadRate()
	}
	return s.ConfigRepo.GetRate()
}

func (s ReconcileService) markPaid(id int64, rec models.PaymentRecord) (bool, error) {
	if s.MarkPaid != nil {
		return s.MarkPaid(id, rec)
	}
	return s.BookingRepo.MarkPaid(id, rec)
}

func (s ReconcileService) reload(id int64) (models.Booking, error) {
	if s.Reload != nil {
		return s.Reload(id)
	}
	return s.BookingRepo.GetByID(id)
}
