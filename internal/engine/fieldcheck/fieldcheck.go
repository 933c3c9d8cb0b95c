package fieldcheck

import (
	"regexp"
	"strings"
)

var (
	gstinPattern   = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	fyPattern      = regexp.MustCompile(`^20\d{2}-\d{2}$`)
	pincodePattern = regexp.MustCompile(`^[1-9]\d{5}$`)
	hsnPattern     = regexp.MustCompile(`^\d{4,8}$`)
)

// months holds the accepted GST return period names.
var months = map[string]bool{
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
}

// GSTIN reports whether v is a well-formed 15-character GSTIN. Format-only:
// the trailing checksum character is not verified.
func GSTIN(v string) bool {
	return gstinPattern.MatchString(v)
}

// FinancialYear reports whether v matches the 20YY-YY financial year format.
func FinancialYear(v string) bool {
	return fyPattern.MatchString(v)
}

// Period reports whether v is a full English calendar month name.
func Period(v string) bool {
	return months[v]
}

// Pincode reports whether v is a 6-digit Indian pincode not starting with 0.
func Pincode(v string) bool {
	return pincodePattern.MatchString(v)
}

// HSN reports whether v is a 4-8 digit HSN/SAC code.
func HSN(v string) bool {
	return hsnPattern.MatchString(v)
}

// Email reports whether v has a single @, non-empty local and domain parts
// free of whitespace, and a dot in the domain.
func Email(v string) bool {
	if strings.Count(v, "@") != 1 || strings.ContainsAny(v, " \t\r\n") {
		return false
	}
	at := strings.Index(v, "@")
	local, domain := v[:at], v[at+1:]
	return local != "" && domain != "" && strings.Contains(domain, ".")
}

// Result is the outcome of a single-field check.
type Result struct {
	Field        string `json:"field"`
	IsValid      bool   `json:"is_valid"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type checker struct {
	valid   func(string) bool
	message string
}

// checkers maps UI field names to their validator and fixed error string.
var checkers = map[string]checker{
	"gstin":         {GSTIN, "GSTIN must be 15 characters in the format 22AAAAA0000A1Z5"},
	"financialYear": {FinancialYear, "financial year must be in the format 2024-25"},
	"period":        {Period, "period must be a full calendar month name"},
	"pincode":       {Pincode, "pincode must be 6 digits and must not start with 0"},
	"email":         {Email, "email address is not valid"},
	"hsnCode":       {HSN, "HSN code must be 4 to 8 digits"},
}

// Check validates a single named field. Unknown field names are considered
// valid, matching the permissive interactive-validation contract.
func Check(field, value string) Result {
	c, ok := checkers[field]
	if !ok {
		return Result{Field: field, IsValid: true}
	}
	if !c.valid(value) {
		return Result{Field: field, IsValid: false, ErrorMessage: c.message}
	}
	return Result{Field: field, IsValid: true}
}

// KnownFields returns the field names Check understands.
func KnownFields() []string {
	out := make([]string, 0, len(checkers))
	for name := range checkers {
		out = append(out, name)
	}
	return out
}
