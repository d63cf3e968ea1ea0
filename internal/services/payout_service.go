package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
	"quickrent/internal/gateway"
	"quickrent/internal/repositories"
)

// PayoutService completes a landlord's payout setup: it creates the gateway
// subaccount and backfills the code onto the landlord's apartments so charges
// against them have a settlement destination.
type PayoutService struct {
	UserRepo      repositories.UserRepository
	ApartmentRepo repositories.ApartmentRepository
	ConfigRepo    repositories.AdminConfigRepository
	Gateway       *gateway.Client
}

type PayoutSetupInput struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BusinessName  string `json:"business_name"`
}

func (s PayoutService) SetupLandlordPayout(ctx context.Context, sess models.Session, in PayoutSetupInput) (string, error) {
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	in.BankCode = strings.TrimSpace(in.BankCode)
	if in.AccountNumber == "" {
		return "", domain.InvalidInputError{Field: "account_number", Msg: "required"}
	}
	if in.BankCode == "" {
		return "", domain.InvalidInputError{Field: "bank_code", Msg: "required"}
	}

	user, err := s.UserRepo.GetByID(sess.UserID)
	if err != nil {
		return "", domain.PersistenceError{Op: "load landlord", Err: err}
	}

	business := strings.TrimSpace(in.BusinessName)
	if business == "" {
		business = user.Name
	}
	if business == "" {
		business = "QuickRent Landlord"
	}

	// The platform's share of each split is the admin commission rate.
	rate, err := s.ConfigRepo.GetRate()
	if err != nil {
		return "", domain.PersistenceError{Op: "load commission rate", Err: err}
	}

	code, err := s.Gateway.CreateSubaccount(ctx, business, user.Email, in.AccountNumber, in.BankCode, rate)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.SetPayoutAccount(user.ID, code, in.AccountNumber, in.BankCode); err != nil {
		return "", domain.PersistenceError{Op: "save payout account", Err: err}
	}
	if err := s.ApartmentRepo.SetSubaccountForLandlord(user.ID, code); err != nil {
		return "", domain.PersistenceError{Op: "backfill apartment subaccounts", Err: err}
	}

	zap.L().Info("landlord payout configured",
		zap.Int64("landlord_id", user.ID),
		zap.String("subaccount_code", code),
	)
	return code, nil
}
