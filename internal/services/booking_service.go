package services

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
	"quickrent/internal/gateway"
	"quickrent/internal/repositories"
)

// BookingService owns the booking lifecycle: it creates pending bookings and
// assembles payment intents. It never confirms payments; that is the
// reconciler's job.
type BookingService struct {
	BookingRepo   repositories.BookingRepository
	ApartmentRepo repositories.ApartmentRepository
	ConfigRepo    repositories.AdminConfigRepository
	Gateway       *gateway.Client
}

// CreateBooking writes a pending booking with the apartment title snapshotted
// at booking time.
func (s BookingService) CreateBooking(sess models.Session, apartmentID int64) (models.Booking, error) {
	if apartmentID <= 0 {
		return models.Booking{}, domain.InvalidInputError{Field: "apartment_id", Msg: "must be positive"}
	}

	apt, err := s.ApartmentRepo.GetByID(apartmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.ApartmentNotFoundError{ApartmentID: apartmentID, Err: err}
		}
		return models.Booking{}, domain.PersistenceError{Op: "load apartment", Err: err}
	}

	pending, err := s.BookingRepo.HasPending(sess.UserID, apartmentID)
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "check pending booking", Err: err}
	}
	if pending {
		return models.Booking{}, domain.DuplicatePendingBookingError{TenantID: sess.UserID, ApartmentID: apartmentID}
	}

	b := models.Booking{
		TenantID:       sess.UserID,
		TenantEmail:    strings.ToLower(strings.TrimSpace(sess.Email)),
		ApartmentID:    apt.ID,
		ApartmentTitle: apt.Title,
	}
	if err := s.BookingRepo.Create(&b); err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "create booking", Err: err}
	}

	zap.L().Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("tenant_id", b.TenantID),
		zap.Int64("apartment_id", b.ApartmentID),
	)
	return b, nil
}

// BuildPaymentIntent reconstructs the charge tuple for a pending booking from
// the live apartment price and the current admin rate. It performs no gateway
// calls and must fail before one is ever attempted when the landlord has no
// settlement destination.
func (s BookingService) BuildPaymentIntent(bookingID int64) (models.PaymentIntent, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.PaymentIntent{}, domain.BookingNotFoundError{Err: err}
		}
		return models.PaymentIntent{}, domain.PersistenceError{Op: "load booking", Err: err}
	}
	if b.Status != models.BookingPending {
		return models.PaymentIntent{}, domain.InvalidInputError{Field: "booking", Msg: "already paid"}
	}

	apt, err := s.ApartmentRepo.GetByID(b.ApartmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.PaymentIntent{}, domain.ApartmentNotFoundError{ApartmentID: b.ApartmentID, Err: err}
		}
		return models.PaymentIntent{}, domain.PersistenceError{Op: "load apartment", Err: err}
	}
	if strings.TrimSpace(apt.SubaccountCode) == "" {
		return models.PaymentIntent{}, domain.LandlordPayoutNotConfiguredError{ApartmentID: apt.ID}
	}

	rate, err := s.ConfigRepo.GetRate()
	if err != nil {
		return models.PaymentIntent{}, domain.PersistenceError{Op: "load commission rate", Err: err}
	}

	charge, err := ComputeCharge(apt.PricePesewas, rate)
	if err != nil {
		return models.PaymentIntent{}, err
	}

	return models.PaymentIntent{
		BookingID:      b.ID,
		ApartmentID:    apt.ID,
		TenantID:       b.TenantID,
		Email:          b.TenantEmail,
		BasePrice:      apt.PricePesewas,
		Commission:     charge.Commission,
		TotalAmount:    charge.TotalAmount,
		CommissionRate: rate,
		SubaccountCode: apt.SubaccountCode,
	}, nil
}

// StartPayment builds the intent and asks the gateway for a hosted payment
// page. The booking stays pending until a confirmation signal arrives.
func (s BookingService) StartPayment(ctx context.Context, sess models.Session, bookingID int64) (models.PaymentIntent, gateway.ChargeAuthorization, error) {
	intent, err := s.BuildPaymentIntent(bookingID)
	if err != nil {
		return models.PaymentIntent{}, gateway.ChargeAuthorization{}, err
	}
	if intent.TenantID != sess.UserID {
		return models.PaymentIntent{}, gateway.ChargeAuthorization{}, domain.BookingNotFoundError{TenantRef: sess.Email, ApartmentID: intent.ApartmentID}
	}

	auth, err := s.Gateway.InitializeCharge(ctx, intent)
	if err != nil {
		return models.PaymentIntent{}, gateway.ChargeAuthorization{}, err
	}

	zap.L().Info("charge initialized",
		zap.Int64("booking_id", intent.BookingID),
		zap.Int64("total_amount", intent.TotalAmount),
		zap.String("reference", auth.Reference),
	)
	return intent, auth, nil
}
