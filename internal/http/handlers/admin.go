package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/http/respond"
	"github.com/tin229oo/nadias-lending/internal/lending"
	"github.com/tin229oo/nadias-lending/internal/middleware"
	"github.com/tin229oo/nadias-lending/internal/models/dto"
	"github.com/tin229oo/nadias-lending/internal/report"
)

// AdminHandler owns the administrative review and export endpoints.
type AdminHandler struct {
	loans *lending.Manager
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(loans *lending.Manager) *AdminHandler {
	return &AdminHandler{loans: loans}
}

// Register attaches admin routes to the mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/admin/loans", h.handleReport)
	mux.HandleFunc("/admin/loans/export", h.handleExport)
	mux.HandleFunc("/admin/loans/approve", h.handleApprove)
}

func (h *AdminHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.loans.Report(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", rows)
}

func (h *AdminHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.loans.Report(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("loan_report_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := report.WriteCSV(w, rows); err != nil {
		zap.L().Error("write loan report", zap.Error(err))
	}
}

func (h *AdminHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ApproveLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	loan, err := h.loans.Approve(r.Context(), middleware.SessionID(r.Context()), req.LoanID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "loan approved", loan)
}
