package engine

import (
	"github.com/shopspring/decimal"

	"gstsim/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeLineItem recomputes every derived amount on a line item from
// quantity, unit price and the four tax rates. Caller-supplied derived values
// are discarded. Rates left at zero model lines with no tax applicable
// (exports, nil-rated supplies). No rounding is applied; display formatting
// is the caller's concern.
func ComputeLineItem(item domain.InvoiceLineItem) (domain.InvoiceLineItem, error) {
	if !item.Quantity.IsPositive() {
		return item, domain.NewPreconditionError("line item quantity must be greater than zero, got %s", item.Quantity)
	}
	if item.UnitPrice.IsNegative() {
		return item, domain.NewPreconditionError("line item unit price must not be negative, got %s", item.UnitPrice)
	}

	item.TaxableAmount = item.Quantity.Mul(item.UnitPrice)
	item.CGSTAmount = taxOf(item.TaxableAmount, item.CGSTRate)
	item.SGSTAmount = taxOf(item.TaxableAmount, item.SGSTRate)
	item.IGSTAmount = taxOf(item.TaxableAmount, item.IGSTRate)
	item.CessAmount = taxOf(item.TaxableAmount, item.CessRate)
	item.TotalAmount = item.TaxableAmount.
		Add(item.CGSTAmount).
		Add(item.SGSTAmount).
		Add(item.IGSTAmount).
		Add(item.CessAmount)

	return item, nil
}

func taxOf(taxable, rate decimal.Decimal) decimal.Decimal {
	return taxable.Mul(rate).Div(hundred)
}
