package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
	"quickrent/internal/repositories"
)

func receiptService(t *testing.T) (ReceiptService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return ReceiptService{BookingRepo: repositories.BookingRepository{DB: db}}, mock
}

func paidReceiptRows() *sqlmock.Rows {
	paidAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "tenant_email", "apartment_id", "apartment_title", "status", "created_at",
		"paid_amount", "base_price", "commission", "commission_rate", "subaccount_code", "paid_at",
	}).AddRow(7, 3, "t@x.com", 11, "Lakeside Studio", "paid", paidAt, 52500, 50000, 2500, 5.0, "ACCT_x1", paidAt)
}

func TestGenerateReceipt(t *testing.T) {
	svc, mock := receiptService(t)

	mock.ExpectQuery("FROM bookings WHERE id=").WithArgs(int64(7)).
		WillReturnRows(paidReceiptRows())

	pdf, filename, err := svc.GenerateReceipt(models.Session{UserID: 3, Email: "t@x.com", Role: models.RoleTenant}, 7)
	if err != nil {
		t.Fatalf("generate receipt error: %v", err)
	}
	if filename != "RECEIPT_7.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestGenerateReceiptRejectsPendingBooking(t *testing.T) {
	svc, mock := receiptService(t)

	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "tenant_email", "apartment_id", "apartment_title", "status", "created_at",
		"paid_amount", "base_price", "commission", "commission_rate", "subaccount_code", "paid_at",
	}).AddRow(7, 3, "t@x.com", 11, "Lakeside Studio", "pending", time.Now(), 0, 0, 0, 0.0, "", nil)

	mock.ExpectQuery("FROM bookings WHERE id=").WithArgs(int64(7)).
		WillReturnRows(rows)

	_, _, err := svc.GenerateReceipt(models.Session{UserID: 3, Role: models.RoleTenant}, 7)
	if !domain.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestGenerateReceiptRejectsForeignTenant(t *testing.T) {
	svc, mock := receiptService(t)

	mock.ExpectQuery("FROM bookings WHERE id=").WithArgs(int64(7)).
		WillReturnRows(paidReceiptRows())

	_, _, err := svc.GenerateReceipt(models.Session{UserID: 42, Email: "other@x.com", Role: models.RoleTenant}, 7)
	if !domain.IsBookingNotFound(err) {
		t.Fatalf("expected BookingNotFoundError, got %v", err)
	}
}

func TestGenerateReceiptAllowsAdmin(t *testing.T) {
	svc, mock := receiptService(t)

	mock.ExpectQuery("FROM bookings WHERE id=").WithArgs(int64(7)).
		WillReturnRows(paidReceiptRows())

	pdf, _, err := svc.GenerateReceipt(models.Session{UserID: 1, Role: models.RoleAdmin}, 7)
	if err != nil {
		t.Fatalf("generate receipt error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf")
	}
}
