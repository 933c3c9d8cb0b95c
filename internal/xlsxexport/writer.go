package xlsxexport

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gstsim/internal/domain"
)

const sheetName = "Returns"

// columns defines the worksheet header row (15 columns).
var columns = []string{
	"Return Type",
	"Financial Year",
	"Quarter",
	"Period",
	"GSTIN",
	"Status",
	"Filing Date",
	"Acknowledgment Number",
	"Taxable Amount",
	"Tax Amount",
	"Grand Total",
	"Score",
	"Time Spent (min)",
	"Attempts",
	"Created At",
}

// WriteReturns builds an Excel workbook with one row per return and writes it
// to w. The workbook always carries the header row, even for an empty batch.
func WriteReturns(w io.Writer, returns []domain.GSTReturn) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range returns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := returnToRow(&returns[i])
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// returnToRow converts a single return to a 15-element slice matching columns.
func returnToRow(ret *domain.GSTReturn) []any {
	return []any{
		string(ret.ReturnType),
		ret.FinancialYear,
		ret.Quarter,
		ret.Period,
		ret.GSTIN,
		string(ret.Status),
		formatTime(ret.FilingDate),
		ret.AcknowledgmentNumber,
		formatMoney(ret.TaxSummary.TotalTaxableAmount.InexactFloat64()),
		formatMoney(ret.TaxSummary.TotalTaxAmount.InexactFloat64()),
		formatMoney(ret.TaxSummary.GrandTotal.InexactFloat64()),
		ret.LearningProgress.Score,
		ret.LearningProgress.TimeSpentMinutes,
		ret.LearningProgress.Attempts,
		ret.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a learner name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_learner_name}_returns_{YYYY-MM-DD}.xlsx
func BuildFilename(learnerName string) string {
	sanitized := SanitizeFilename(learnerName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_returns_%s.xlsx", sanitized, date)
}
