// Package notify broadcasts loan lifecycle events to interested consumers.
package notify

import (
	"context"

	"github.com/tin229oo/nadias-lending/internal/models"
)

// Publisher receives loan lifecycle events. Publishing is best-effort: the
// lifecycle never fails because a broker is down.
type Publisher interface {
	LoanApplied(ctx context.Context, loan models.Loan)
	LoanApproved(ctx context.Context, loan models.Loan)
}

// Noop discards every event. Used when no broker is configured and in tests.
type Noop struct{}

func (Noop) LoanApplied(context.Context, models.Loan)  {}
func (Noop) LoanApproved(context.Context, models.Loan) {}
