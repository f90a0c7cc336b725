package models

import "time"

// Loan statuses. A loan is created pending and can only move to approved;
// no rejection or closure states exist.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// ScheduleEntry is one month of a loan's amortization schedule. Currency
// values are rounded to two decimal places independently per entry.
type ScheduleEntry struct {
	Month     int     `json:"month"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// Loan is a single originated loan with its projected schedule. Loans are
// never deleted; the only mutation after creation is the pending→approved
// status transition.
type Loan struct {
	ID             int64           `json:"id"`
	ApplicantID    int64           `json:"applicant_id"`
	Amount         float64         `json:"amount"`
	TermMonths     int             `json:"term_months"`
	Rate           float64         `json:"rate"`
	MonthlyPayment float64         `json:"monthly_payment"`
	Schedule       []ScheduleEntry `json:"schedule"`
	Status         string          `json:"status"`
	AppliedAt      time.Time       `json:"applied_at"`
}

// ReportRow joins a loan with its applicant's name for administrative review.
type ReportRow struct {
	LoanID     int64     `json:"loan_id"`
	Applicant  string    `json:"applicant"`
	Amount     float64   `json:"amount"`
	TermMonths int       `json:"term_months"`
	Rate       float64   `json:"rate"`
	Status     string    `json:"status"`
	AppliedAt  time.Time `json:"applied_at"`
}
