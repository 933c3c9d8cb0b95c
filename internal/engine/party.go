package engine

import (
	"gstsim/internal/domain"
	"gstsim/internal/engine/fieldcheck"
)

// validateParty gates a party's identifiers before any aggregation runs.
func validateParty(role string, p *domain.Party, gstinRequired bool) error {
	if gstinRequired && p.GSTIN == "" {
		return domain.NewValidationError(role+".gstin", "GSTIN is required")
	}
	if p.GSTIN != "" && !fieldcheck.GSTIN(p.GSTIN) {
		return domain.NewValidationError(role+".gstin", "GSTIN must be 15 characters in the format 22AAAAA0000A1Z5")
	}
	if p.Address.Pincode != "" && !fieldcheck.Pincode(p.Address.Pincode) {
		return domain.NewValidationError(role+".address.pincode", "pincode must be 6 digits and must not start with 0")
	}
	if p.Contact.Email != "" && !fieldcheck.Email(p.Contact.Email) {
		return domain.NewValidationError(role+".contact.email", "email address is not valid")
	}
	return nil
}
