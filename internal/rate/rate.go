// Package rate holds the company interest rules.
package rate

// Annual returns the annual interest percentage for a requested amount and
// term in months. Tier upper bounds are inclusive on both axes.
func Annual(amount float64, term int) float64 {
	switch {
	case amount <= 20000:
		if term <= 6 {
			return 12
		}
		return 18
	case amount <= 50000:
		if term <= 6 {
			return 24
		}
		return 30
	default:
		return 36
	}
}
