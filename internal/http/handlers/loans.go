package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tin229oo/nadias-lending/internal/http/respond"
	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/lending"
	"github.com/tin229oo/nadias-lending/internal/middleware"
	"github.com/tin229oo/nadias-lending/internal/models/dto"
)

// LoanHandler owns the customer-facing loan endpoints.
type LoanHandler struct {
	identity *identity.Manager
	loans    *lending.Manager
}

// NewLoanHandler constructs the handler.
func NewLoanHandler(identity *identity.Manager, loans *lending.Manager) *LoanHandler {
	return &LoanHandler{identity: identity, loans: loans}
}

// Register attaches loan routes to the mux.
func (h *LoanHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/loans", h.handleLoans)
}

func (h *LoanHandler) handleLoans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleApply(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoanHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	loan, err := h.loans.Apply(r.Context(), middleware.SessionID(r.Context()), req.Amount, req.Term)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "loan application submitted", loan)
}

func (h *LoanHandler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok, err := h.identity.CurrentUser(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}

	loans, err := h.loans.LoansFor(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.LoansResponse{Loans: loans, Summary: lending.Summarize(loans)})
}
