package services

import (
	"quickrent/internal/domain"
	"quickrent/internal/repositories"
)

// ReportsService aggregates confirmed revenue and commission for the admin
// dashboard. Figures come from paid bookings only; pending bookings carry no
// money until confirmation.
type ReportsService struct {
	BookingRepo repositories.BookingRepository
}

func (s ReportsService) Summary() (repositories.RevenueSummary, error) {
	sum, err := s.BookingRepo.SummarizePaid()
	if err != nil {
		return repositories.RevenueSummary{}, domain.PersistenceError{Op: "summarize revenue", Err: err}
	}
	return sum, nil
}

func (s ReportsService) Monthly() ([]repositories.MonthlyRevenue, error) {
	rows, err := s.BookingRepo.SummarizePaidMonthly()
	if err != nil {
		return nil, domain.PersistenceError{Op: "summarize monthly revenue", Err: err}
	}
	return rows, nil
}
