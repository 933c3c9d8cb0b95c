package engine

import (
	"fmt"

	"gstsim/internal/domain"
)

// RecomputeInvoice recomputes every derived field on an invoice: per-item
// amounts, the invoice-level tax summary, and the interstate classification.
// It is deterministic and side-effect-free so callers run it before every
// persist. An empty item list zeroes the summary rather than leaving a stale
// one behind.
func RecomputeInvoice(inv *domain.Invoice) error {
	for i := range inv.LineItems {
		item, err := ComputeLineItem(inv.LineItems[i])
		if err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
		inv.LineItems[i] = item
	}

	var summary domain.TaxSummary
	for i := range inv.LineItems {
		item := &inv.LineItems[i]
		summary.TotalTaxableAmount = summary.TotalTaxableAmount.Add(item.TaxableAmount)
		summary.TotalCGSTAmount = summary.TotalCGSTAmount.Add(item.CGSTAmount)
		summary.TotalSGSTAmount = summary.TotalSGSTAmount.Add(item.SGSTAmount)
		summary.TotalIGSTAmount = summary.TotalIGSTAmount.Add(item.IGSTAmount)
		summary.TotalCessAmount = summary.TotalCessAmount.Add(item.CessAmount)
	}
	summary.TotalTaxAmount = summary.TotalCGSTAmount.
		Add(summary.TotalSGSTAmount).
		Add(summary.TotalIGSTAmount).
		Add(summary.TotalCessAmount)
	summary.GrandTotal = summary.TotalTaxableAmount.Add(summary.TotalTaxAmount)
	inv.TaxSummary = summary

	inv.IsInterstate = inv.Supplier.Address.State != inv.Recipient.Address.State
	if inv.IsInterstate {
		inv.TaxType = domain.TaxTypeIGST
	} else {
		inv.TaxType = domain.TaxTypeCGSTSGST
	}

	return nil
}

// ValidateInvoiceParties checks the statutory identifiers on both parties.
// The supplier GSTIN is mandatory; the recipient GSTIN is optional (B2C) but
// must be well-formed when present.
func ValidateInvoiceParties(inv *domain.Invoice) error {
	if err := validateParty("supplier", &inv.Supplier, true); err != nil {
		return err
	}
	return validateParty("recipient", &inv.Recipient, false)
}
