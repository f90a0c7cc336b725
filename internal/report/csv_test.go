package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tin229oo/nadias-lending/internal/models"
)

func TestWriteCSV(t *testing.T) {
	appliedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	rows := []models.ReportRow{
		{LoanID: 1, Applicant: "Ana", Amount: 20000, TermMonths: 6, Rate: 12, Status: "pending", AppliedAt: appliedAt},
		{LoanID: 2, Applicant: `O'Neil, "Quoty"`, Amount: 50000.5, TermMonths: 12, Rate: 36, Status: "approved", AppliedAt: appliedAt},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "LoanID,Applicant,Amount,Term,Rate,Status,AppliedAt", lines[0])
	assert.Equal(t, "1,Ana,20000.00,6,12,pending,2024-03-15T10:30:00Z", lines[1])
	// Fields with delimiters or quotes must be quoted, internal quotes doubled.
	assert.Contains(t, lines[2], `"O'Neil, ""Quoty"""`)
	assert.True(t, strings.HasPrefix(lines[2], "2,"))
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "LoanID,Applicant,Amount,Term,Rate,Status,AppliedAt\n", buf.String())
}
