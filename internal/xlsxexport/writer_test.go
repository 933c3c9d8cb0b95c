package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstsim/internal/domain"
)

func TestWriteReturns_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReturns(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Returns")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Return Type", rows[0][0])
	assert.Equal(t, "Created At", rows[0][14])
}

func TestWriteReturns_Rows(t *testing.T) {
	filedAt := time.Date(2024, 9, 15, 12, 30, 45, 0, time.UTC)
	ret := domain.GSTReturn{
		ID:                   uuid.New(),
		ReturnType:           domain.ReturnTypeGSTR1,
		FinancialYear:        "2024-25",
		Quarter:              "Q2",
		Period:               "September",
		GSTIN:                "22AAAAA0000A1Z5",
		Status:               domain.FilingStatusSubmitted,
		FilingDate:           &filedAt,
		AcknowledgmentNumber: "ACK20240915123045XYZ",
		TaxSummary: domain.TaxSummary{
			TotalTaxableAmount: decimal.NewFromInt(1500),
			TotalTaxAmount:     decimal.NewFromInt(205),
			GrandTotal:         decimal.NewFromInt(1705),
		},
		LearningProgress: domain.LearningProgress{Score: 20, TimeSpentMinutes: 45, Attempts: 2},
		CreatedAt:        time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReturns(&buf, []domain.GSTReturn{ret}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Returns")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "GSTR-1", row[0])
	assert.Equal(t, "2024-25", row[1])
	assert.Equal(t, "Q2", row[2])
	assert.Equal(t, "September", row[3])
	assert.Equal(t, "22AAAAA0000A1Z5", row[4])
	assert.Equal(t, "SUBMITTED", row[5])
	assert.Equal(t, "2024-09-15T12:30:45Z", row[6])
	assert.Equal(t, "ACK20240915123045XYZ", row[7])
	assert.Equal(t, "1500.00", row[8])
	assert.Equal(t, "205.00", row[9])
	assert.Equal(t, "1705.00", row[10])
	assert.Equal(t, "20", row[11])
	assert.Equal(t, "45", row[12])
	assert.Equal(t, "2", row[13])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Asha Learner", "Asha_Learner"},
		{"special chars", "a/b\\c:d", "a_b_c_d"},
		{"collapses underscores", "a___b", "a_b"},
		{"trims underscores", "_abc_", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("Asha Learner")
	assert.Regexp(t, `^Asha_Learner_returns_\d{4}-\d{2}-\d{2}\.xlsx$`, got)
}
