// Package dto holds the request and response shapes for the HTTP surface.
package dto

import (
	"time"

	"github.com/tin229oo/nadias-lending/internal/lending"
	"github.com/tin229oo/nadias-lending/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the API view of a user; it never carries the password hash.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser strips a stored user down to its API view.
func NewUser(u models.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ApplyLoanRequest struct {
	Amount float64 `json:"amount"`
	Term   int     `json:"term"`
}

type ApproveLoanRequest struct {
	LoanID int64 `json:"loan_id"`
}

type LoansResponse struct {
	Loans   []models.Loan   `json:"loans"`
	Summary lending.Summary `json:"summary"`
}
