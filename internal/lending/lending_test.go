package lending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/kv/memory"
	"github.com/tin229oo/nadias-lending/internal/models"
	"github.com/tin229oo/nadias-lending/internal/store"
)

type recordingPublisher struct {
	applied  []models.Loan
	approved []models.Loan
}

func (p *recordingPublisher) LoanApplied(_ context.Context, loan models.Loan) {
	p.applied = append(p.applied, loan)
}

func (p *recordingPublisher) LoanApproved(_ context.Context, loan models.Loan) {
	p.approved = append(p.approved, loan)
}

type fixture struct {
	records  *store.Records
	identity *identity.Manager
	loans    *Manager
	events   *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	slots := memory.New()
	records := store.New(slots, "test:db", store.SeedAdmin{
		Name:     "Administrator",
		Email:    "admin@nadia.local",
		Password: "admin123",
	})
	ident := identity.NewManager(records, slots, time.Hour, zap.NewNop())
	events := &recordingPublisher{}
	return &fixture{
		records:  records,
		identity: ident,
		loans:    NewManager(records, ident, events, zap.NewNop()),
		events:   events,
	}
}

func (f *fixture) loginCustomer(t *testing.T) (models.User, string) {
	t.Helper()
	ctx := context.Background()
	user, err := f.identity.Register(ctx, "Ana", "ana@example.com", "+15550001", "secret1")
	require.NoError(t, err)
	_, sid, ok, err := f.identity.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, ok)
	return user, sid
}

func (f *fixture) loginAdmin(t *testing.T) string {
	t.Helper()
	_, sid, ok, err := f.identity.Login(context.Background(), "admin@nadia.local", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	return sid
}

func TestApply_ComputesRateAndSchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, sid := f.loginCustomer(t)

	loan, err := f.loans.Apply(ctx, sid, 20000, 6)
	require.NoError(t, err)

	assert.Equal(t, int64(1), loan.ID)
	assert.Equal(t, user.ID, loan.ApplicantID)
	assert.Equal(t, 12.0, loan.Rate)
	assert.InDelta(t, 3450.97, loan.MonthlyPayment, 0.001)
	assert.Equal(t, models.StatusPending, loan.Status)
	assert.False(t, loan.AppliedAt.IsZero())
	require.Len(t, loan.Schedule, 6)
	assert.InDelta(t, 200.00, loan.Schedule[0].Interest, 0.001)
	assert.InDelta(t, 0, loan.Schedule[5].Balance, 0.06)

	require.Len(t, f.events.applied, 1)
	assert.Equal(t, loan.ID, f.events.applied[0].ID)
}

func TestApply_SequentialLoanIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, sid := f.loginCustomer(t)

	first, err := f.loans.Apply(ctx, sid, 10000, 12)
	require.NoError(t, err)
	second, err := f.loans.Apply(ctx, sid, 30000, 6)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 18.0, first.Rate)
	assert.Equal(t, 24.0, second.Rate)
}

func TestApply_RequiresSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.loans.Apply(ctx, "", 20000, 6)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// No loan may have been persisted.
	data, err := f.records.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Loans)
	assert.Equal(t, int64(1), data.NextLoanID)
	assert.Empty(t, f.events.applied)
}

func TestApply_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, sid := f.loginCustomer(t)

	_, err := f.loans.Apply(ctx, sid, 0, 6)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.loans.Apply(ctx, sid, 20000, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	data, err := f.records.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Loans)
}

func TestApprove_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, customerSID := f.loginCustomer(t)
	adminSID := f.loginAdmin(t)

	loan, err := f.loans.Apply(ctx, customerSID, 20000, 6)
	require.NoError(t, err)

	approved, err := f.loans.Approve(ctx, adminSID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.Len(t, f.events.approved, 1)

	// Re-approval is a no-op, not an error, and publishes nothing new.
	again, err := f.loans.Approve(ctx, adminSID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, again.Status)
	assert.Len(t, f.events.approved, 1)
}

func TestApprove_UnknownLoan(t *testing.T) {
	f := newFixture(t)
	adminSID := f.loginAdmin(t)

	_, err := f.loans.Approve(context.Background(), adminSID, 99)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, customerSID := f.loginCustomer(t)

	loan, err := f.loans.Apply(ctx, customerSID, 20000, 6)
	require.NoError(t, err)

	_, err = f.loans.Approve(ctx, customerSID, loan.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.loans.Approve(ctx, "", loan.ID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoansFor_FiltersByApplicant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, sid := f.loginCustomer(t)

	other, err := f.identity.Register(ctx, "Ben", "ben@example.com", "", "secret2")
	require.NoError(t, err)
	_, otherSID, ok, err := f.identity.Login(ctx, "ben@example.com", "secret2")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.loans.Apply(ctx, sid, 10000, 6)
	require.NoError(t, err)
	_, err = f.loans.Apply(ctx, otherSID, 30000, 12)
	require.NoError(t, err)
	_, err = f.loans.Apply(ctx, sid, 5000, 3)
	require.NoError(t, err)

	mine, err := f.loans.LoansFor(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Less(t, mine[0].ID, mine[1].ID)

	theirs, err := f.loans.LoansFor(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestReport_JoinsApplicantNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, sid := f.loginCustomer(t)
	adminSID := f.loginAdmin(t)

	_, err := f.loans.Apply(ctx, sid, 20000, 6)
	require.NoError(t, err)

	rows, err := f.loans.Report(ctx, adminSID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].Applicant)
	assert.Equal(t, models.StatusPending, rows[0].Status)

	// Customers may not pull the report.
	_, err = f.loans.Report(ctx, sid)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestSummarize(t *testing.T) {
	loans := []models.Loan{
		{Status: models.StatusApproved, MonthlyPayment: 100, TermMonths: 12},
		{Status: models.StatusPending, MonthlyPayment: 999, TermMonths: 12},
		{Status: models.StatusApproved, MonthlyPayment: 50.50, TermMonths: 6},
	}
	s := Summarize(loans)
	assert.Equal(t, 2, s.ApprovedCount)
	assert.InDelta(t, 1503.00, s.Outstanding, 0.001)
}
