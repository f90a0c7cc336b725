// Package report renders the administrative loan export.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/tin229oo/nadias-lending/internal/models"
)

var header = []string{"LoanID", "Applicant", "Amount", "Term", "Rate", "Status", "AppliedAt"}

// WriteCSV renders report rows as RFC 4180 CSV: fields containing delimiters
// or quotes are quoted with internal quotes doubled.
func WriteCSV(w io.Writer, rows []models.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.LoanID, 10),
			row.Applicant,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			strconv.Itoa(row.TermMonths),
			strconv.FormatFloat(row.Rate, 'f', -1, 64),
			row.Status,
			row.AppliedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
