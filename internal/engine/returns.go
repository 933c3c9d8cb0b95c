package engine

import (
	"gstsim/internal/domain"
	"gstsim/internal/engine/fieldcheck"
)

// sectionNames lists the twelve return sections in statutory order, keyed the
// same way the API exposes them.
var sectionNames = []string{
	"b2b_invoices",
	"b2c_large_invoices",
	"export_invoices",
	"b2c_others",
	"nil_rated_supplies",
	"credit_debit_notes_registered",
	"credit_debit_notes_unregistered",
	"tax_liability_advances",
	"adjustment_advances",
	"hsn_summary",
	"documents_issued",
	"eco_supplies",
}

// SectionNames returns the twelve section keys in statutory order.
func SectionNames() []string {
	out := make([]string, len(sectionNames))
	copy(out, sectionNames)
	return out
}

// SectionByName resolves a section key to the matching section pointer.
func SectionByName(rd *domain.RecordDetails, name string) (*domain.ReturnSection, bool) {
	switch name {
	case "b2b_invoices":
		return &rd.B2BInvoices, true
	case "b2c_large_invoices":
		return &rd.B2CLargeInvoices, true
	case "export_invoices":
		return &rd.ExportInvoices, true
	case "b2c_others":
		return &rd.B2COthers, true
	case "nil_rated_supplies":
		return &rd.NilRatedSupplies, true
	case "credit_debit_notes_registered":
		return &rd.CreditDebitNotesRegistered, true
	case "credit_debit_notes_unregistered":
		return &rd.CreditDebitNotesUnregistered, true
	case "tax_liability_advances":
		return &rd.TaxLiabilityAdvances, true
	case "adjustment_advances":
		return &rd.AdjustmentAdvances, true
	case "hsn_summary":
		return &rd.HSNSummary, true
	case "documents_issued":
		return &rd.DocumentsIssued, true
	case "eco_supplies":
		return &rd.EcoSupplies, true
	}
	return nil, false
}

// RecomputeReturn recomputes the return-level tax summary from the sections
// marked completed. Incomplete sections do not contribute, modeling a learner
// who has not yet filled every part of the form. Sections carry a single
// undifferentiated tax amount, so the per-type totals stay zero at return
// level; only the overall totals are derivable.
func RecomputeReturn(ret *domain.GSTReturn) {
	var summary domain.TaxSummary
	for _, name := range sectionNames {
		section, _ := SectionByName(&ret.RecordDetails, name)
		if !section.IsCompleted {
			continue
		}
		summary.TotalTaxableAmount = summary.TotalTaxableAmount.Add(section.TaxableValue)
		summary.TotalTaxAmount = summary.TotalTaxAmount.Add(section.TaxAmount)
	}
	summary.GrandTotal = summary.TotalTaxableAmount.Add(summary.TotalTaxAmount)
	ret.TaxSummary = summary
}

// ValidateReturnHeader gates the statutory identifiers on a return.
func ValidateReturnHeader(ret *domain.GSTReturn) error {
	if !domain.KnownReturnTypes[ret.ReturnType] {
		return domain.NewValidationError("return_type", "return type must be one of GSTR-1, GSTR-1A, GSTR-2, GSTR-3, GSTR-3B")
	}
	if !fieldcheck.FinancialYear(ret.FinancialYear) {
		return domain.NewValidationError("financial_year", "financial year must be in the format 2024-25")
	}
	if !fieldcheck.Period(ret.Period) {
		return domain.NewValidationError("period", "period must be a full calendar month name")
	}
	if !fieldcheck.GSTIN(ret.GSTIN) {
		return domain.NewValidationError("gstin", "GSTIN must be 15 characters in the format 22AAAAA0000A1Z5")
	}
	return nil
}
