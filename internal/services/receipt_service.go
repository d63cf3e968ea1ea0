package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"quickrent/internal/domain"
	"quickrent/internal/domain/models"
	"quickrent/internal/repositories"
	"quickrent/internal/utils"
)

// ReceiptService renders rent receipts for paid bookings.
type ReceiptService struct {
	BookingRepo repositories.BookingRepository
}

// GenerateReceipt produces a PDF receipt. Only the booking's tenant (or an
// admin) may fetch it, and only after the booking is paid.
func (s ReceiptService) GenerateReceipt(sess models.Session, bookingID int64) ([]byte, string, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", domain.BookingNotFoundError{Err: err}
		}
		return nil, "", domain.PersistenceError{Op: "load booking", Err: err}
	}
	if b.TenantID != sess.UserID && sess.Role != models.RoleAdmin {
		return nil, "", domain.BookingNotFoundError{TenantRef: sess.Email, ApartmentID: b.ApartmentID}
	}
	if b.Status != models.BookingPaid {
		return nil, "", domain.InvalidInputError{Field: "booking", Msg: "payment not confirmed"}
	}

	return buildReceiptPDF(b)
}

func buildReceiptPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rent Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENT RECEIPT")
	pdf.Ln(12)

	paidAt := time.Now()
	if b.PaidAt != nil {
		paidAt = *b.PaidAt
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : RCPT-%d", b.ID),
		fmt.Sprintf("Date         : %s", paidAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Tenant       : %s", safe(b.TenantEmail, "-")),
		fmt.Sprintf("Apartment    : %s", safe(b.ApartmentTitle, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Breakdown:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Monthly rent          : "+utils.FormatGHS(b.BasePrice))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Service commission (%.1f%%) : %s", b.CommissionRate, utils.FormatGHS(b.Commission)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total paid: "+utils.FormatGHS(b.PaidAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment collected via Paystack. Keep this receipt for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
