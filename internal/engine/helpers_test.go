package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstsim/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Equal(dec(expected)), "expected %s, got %s %v", expected, got, msgAndArgs)
}

func validLineItem() domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		ItemName:  "Steel rods",
		HSNCode:   "7214",
		Quantity:  dec("10"),
		Unit:      domain.UnitKg,
		UnitPrice: dec("100"),
		CGSTRate:  dec("9"),
		SGSTRate:  dec("9"),
	}
}

func validInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: "INV-2024-001",
		Supplier: domain.Party{
			Name:  "Sharma Traders",
			GSTIN: "22AAAAA0000A1Z5",
			Address: domain.Address{
				Street: "14 MG Road", City: "Raipur", State: "Chhattisgarh",
				Pincode: "492001", Country: "India",
			},
			Contact: domain.Contact{Phone: "9876543210", Email: "sales@sharmatraders.in"},
		},
		Recipient: domain.Party{
			Name: "Gupta Stores",
			Address: domain.Address{
				Street: "2 Park Street", City: "Raipur", State: "Chhattisgarh",
				Pincode: "492004", Country: "India",
			},
		},
		LineItems: []domain.InvoiceLineItem{validLineItem()},
		Status:    domain.FilingStatusDraft,
		IsActive:  true,
	}
}

func validReturn() *domain.GSTReturn {
	ret := &domain.GSTReturn{
		ReturnType:    domain.ReturnTypeGSTR1,
		FinancialYear: "2024-25",
		Quarter:       "Q2",
		Period:        "September",
		GSTIN:         "22AAAAA0000A1Z5",
		Status:        domain.FilingStatusDraft,
		IsActive:      true,
	}
	ret.RecordDetails.B2BInvoices = domain.ReturnSection{
		Count: 3, TaxableValue: dec("1000"), TaxAmount: dec("180"), IsCompleted: true,
	}
	ret.RecordDetails.B2COthers = domain.ReturnSection{
		Count: 5, TaxableValue: dec("500"), TaxAmount: dec("25"), IsCompleted: true,
	}
	ret.RecordDetails.ExportInvoices = domain.ReturnSection{
		Count: 1, TaxableValue: dec("9999"), TaxAmount: dec("999"), IsCompleted: false,
	}
	return ret
}
