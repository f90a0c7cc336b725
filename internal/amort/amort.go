// Package amort computes fixed-rate amortization schedules.
package amort

import (
	"errors"
	"math"

	"github.com/tin229oo/nadias-lending/internal/models"
)

// Round2 rounds a currency value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Result is the computed amortization for a loan.
type Result struct {
	MonthlyPayment float64
	Entries        []models.ScheduleEntry
}

// Schedule computes the level monthly payment and the month-by-month
// amortization for a loan. rate is the annual percentage. Each emitted
// currency value is rounded independently; rounding drift on the final balance
// is accepted rather than corrected with a balancing adjustment.
func Schedule(amount float64, term int, rate float64) (Result, error) {
	if amount <= 0 {
		return Result{}, errors.New("amount must be positive")
	}
	if term <= 0 {
		return Result{}, errors.New("term must be positive")
	}
	if rate < 0 {
		return Result{}, errors.New("rate must not be negative")
	}

	monthlyRate := rate / 100 / 12

	var payment float64
	if monthlyRate == 0 {
		// The annuity formula divides by zero at 0%; the limit is an even split.
		payment = amount / float64(term)
	} else {
		payment = amount * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(term)))
	}

	entries := make([]models.ScheduleEntry, 0, term)
	balance := amount
	for month := 1; month <= term; month++ {
		interest := balance * monthlyRate
		principal := payment - interest
		balance = math.Max(0, balance-principal)
		entries = append(entries, models.ScheduleEntry{
			Month:     month,
			Interest:  Round2(interest),
			Principal: Round2(principal),
			Balance:   Round2(balance),
		})
	}

	return Result{MonthlyPayment: Round2(payment), Entries: entries}, nil
}
