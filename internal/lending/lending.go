// Package lending orchestrates loan origination, approval, and queries.
package lending

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/amort"
	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/models"
	"github.com/tin229oo/nadias-lending/internal/notify"
	"github.com/tin229oo/nadias-lending/internal/rate"
	"github.com/tin229oo/nadias-lending/internal/store"
)

var (
	// ErrNotAuthenticated indicates an operation that needs a live session.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrInvalidInput indicates a non-positive amount or term.
	ErrInvalidInput = errors.New("amount and term must be positive")
	// ErrLoanNotFound indicates an operation on an unknown loan id.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrNotAuthorized indicates a non-admin attempting an admin operation.
	ErrNotAuthorized = errors.New("administrator privileges required")
)

// Manager is the loan lifecycle manager.
type Manager struct {
	records  *store.Records
	sessions *identity.Manager
	events   notify.Publisher
	log      *zap.Logger
	now      func() time.Time
}

// NewManager wires the lifecycle manager to its collaborators.
func NewManager(records *store.Records, sessions *identity.Manager, events notify.Publisher, log *zap.Logger) *Manager {
	return &Manager{
		records:  records,
		sessions: sessions,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// Apply originates a loan for the session's user. The annual rate always
// comes from the company rate table; callers cannot supply their own. All
// validation happens before any mutation, so a failure never needs rollback.
func (m *Manager) Apply(ctx context.Context, sessionID string, amount float64, term int) (models.Loan, error) {
	user, ok, err := m.sessions.CurrentUser(ctx, sessionID)
	if err != nil {
		return models.Loan{}, err
	}
	if !ok {
		return models.Loan{}, ErrNotAuthenticated
	}
	if amount <= 0 || term <= 0 {
		return models.Loan{}, ErrInvalidInput
	}

	annual := rate.Annual(amount, term)
	result, err := amort.Schedule(amount, term, annual)
	if err != nil {
		return models.Loan{}, err
	}

	data, err := m.records.Load(ctx)
	if err != nil {
		return models.Loan{}, err
	}

	loan := models.Loan{
		ID:             data.NextLoanID,
		ApplicantID:    user.ID,
		Amount:         amount,
		TermMonths:     term,
		Rate:           annual,
		MonthlyPayment: result.MonthlyPayment,
		Schedule:       result.Entries,
		Status:         models.StatusPending,
		AppliedAt:      m.now().UTC(),
	}
	data.NextLoanID++
	data.Loans = append(data.Loans, loan)
	if err := m.records.Save(ctx, data); err != nil {
		return models.Loan{}, err
	}

	m.events.LoanApplied(ctx, loan)
	m.log.Info("loan applied",
		zap.Int64("loan_id", loan.ID),
		zap.Int64("applicant_id", user.ID),
		zap.Float64("rate", annual),
	)
	return loan, nil
}

// Approve marks the loan approved. Re-approving an approved loan is a no-op,
// not an error, since no other terminal states exist.
func (m *Manager) Approve(ctx context.Context, sessionID string, loanID int64) (models.Loan, error) {
	if err := m.requireAdmin(ctx, sessionID); err != nil {
		return models.Loan{}, err
	}

	data, err := m.records.Load(ctx)
	if err != nil {
		return models.Loan{}, err
	}
	for i := range data.Loans {
		if data.Loans[i].ID != loanID {
			continue
		}
		if data.Loans[i].Status == models.StatusApproved {
			return data.Loans[i], nil
		}
		data.Loans[i].Status = models.StatusApproved
		if err := m.records.Save(ctx, data); err != nil {
			return models.Loan{}, err
		}
		m.events.LoanApproved(ctx, data.Loans[i])
		m.log.Info("loan approved", zap.Int64("loan_id", loanID))
		return data.Loans[i], nil
	}
	return models.Loan{}, ErrLoanNotFound
}

// LoansFor returns the applicant's loans in store order, which is ascending id
// order since ids are assigned sequentially.
func (m *Manager) LoansFor(ctx context.Context, userID int64) ([]models.Loan, error) {
	data, err := m.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Loan
	for _, l := range data.Loans {
		if l.ApplicantID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Report joins every loan with its applicant's name for administrative
// review. Read-only.
func (m *Manager) Report(ctx context.Context, sessionID string) ([]models.ReportRow, error) {
	if err := m.requireAdmin(ctx, sessionID); err != nil {
		return nil, err
	}

	data, err := m.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(data.Users))
	for _, u := range data.Users {
		names[u.ID] = u.Name
	}
	rows := make([]models.ReportRow, 0, len(data.Loans))
	for _, l := range data.Loans {
		rows = append(rows, models.ReportRow{
			LoanID:     l.ID,
			Applicant:  names[l.ApplicantID],
			Amount:     l.Amount,
			TermMonths: l.TermMonths,
			Rate:       l.Rate,
			Status:     l.Status,
			AppliedAt:  l.AppliedAt,
		})
	}
	return rows, nil
}

func (m *Manager) requireAdmin(ctx context.Context, sessionID string) error {
	user, ok, err := m.sessions.CurrentUser(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthenticated
	}
	if !user.IsAdmin() {
		return ErrNotAuthorized
	}
	return nil
}

// Summary aggregates a user's loans the way the dashboard presents them:
// approved loan count and the total committed across remaining payments.
type Summary struct {
	ApprovedCount int     `json:"approved_count"`
	Outstanding   float64 `json:"outstanding"`
}

// Summarize computes the dashboard aggregates for a set of loans.
func Summarize(loans []models.Loan) Summary {
	var s Summary
	for _, l := range loans {
		if l.Status != models.StatusApproved {
			continue
		}
		s.ApprovedCount++
		s.Outstanding += l.MonthlyPayment * float64(l.TermMonths)
	}
	s.Outstanding = amort.Round2(s.Outstanding)
	return s
}
