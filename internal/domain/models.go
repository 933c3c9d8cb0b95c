package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Address is a party's postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Contact holds a party's contact details.
type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Party represents the supplier or recipient on an invoice. The recipient
// GSTIN may be empty for B2C transactions.
type Party struct {
	Name    string  `json:"name"`
	GSTIN   string  `json:"gstin"`
	Address Address `json:"address"`
	Contact Contact `json:"contact"`
}

// InvoiceLineItem is a single line on an invoice. The amount fields are
// derived from quantity, unit price and rates; the engine recomputes them on
// every write and never trusts caller-supplied values.
type InvoiceLineItem struct {
	ItemName    string          `json:"item_name"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        Unit            `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`

	CGSTRate decimal.Decimal `json:"cgst_rate"`
	SGSTRate decimal.Decimal `json:"sgst_rate"`
	IGSTRate decimal.Decimal `json:"igst_rate"`
	CessRate decimal.Decimal `json:"cess_rate"`

	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	CessAmount    decimal.Decimal `json:"cess_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// TaxSummary aggregates tax amounts over line items or return sections.
// It is always a pure function of the owning record, never authored directly.
type TaxSummary struct {
	TotalTaxableAmount decimal.Decimal `json:"total_taxable_amount"`
	TotalCGSTAmount    decimal.Decimal `json:"total_cgst_amount"`
	TotalSGSTAmount    decimal.Decimal `json:"total_sgst_amount"`
	TotalIGSTAmount    decimal.Decimal `json:"total_igst_amount"`
	TotalCessAmount    decimal.Decimal `json:"total_cess_amount"`
	TotalTaxAmount     decimal.Decimal `json:"total_tax_amount"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
}

// TransportDetails holds optional goods movement metadata.
type TransportDetails struct {
	TransporterName string `json:"transporter_name"`
	VehicleNumber   string `json:"vehicle_number"`
	LRNumber        string `json:"lr_number"`
	TransportMode   string `json:"transport_mode"`
}

// EInvoiceDetails holds simulated e-invoice registration metadata.
type EInvoiceDetails struct {
	IRN     string     `json:"irn"`
	QRCode  string     `json:"qr_code"`
	AckNo   string     `json:"ack_no"`
	AckDate *time.Time `json:"ack_date"`
	Status  string     `json:"status"`
}

// Hint is a single guided-learning hint attached to a simulation.
type Hint struct {
	Field string `json:"field"`
	Hint  string `json:"hint"`
	Order int    `json:"order"`
}

// ValidationRules configures which checks the simulation UI enforces.
type ValidationRules struct {
	RequiredFields []string `json:"required_fields"`
	AutoCalculate  bool     `json:"auto_calculate"`
	ShowErrors     bool     `json:"show_errors"`
}

// SimulationConfig describes the scenario a learner works through. It is
// fixed at creation and never touched by the tax math.
type SimulationConfig struct {
	IsSimulation    bool            `json:"is_simulation"`
	Difficulty      Difficulty      `json:"difficulty"`
	Hints           []Hint          `json:"hints"`
	ValidationRules ValidationRules `json:"validation_rules"`
}

// LearningProgress tracks a learner's advancement through one simulation.
// Mutations go through the engine's progress operations only.
type LearningProgress struct {
	CompletedSteps   []string `json:"completed_steps"`
	CurrentStep      string   `json:"current_step"`
	Score            int      `json:"score"`
	TimeSpentMinutes int      `json:"time_spent_minutes"`
	Attempts         int      `json:"attempts"`
}

// Invoice is a simulated GST invoice owned by a learner.
type Invoice struct {
	ID            uuid.UUID `db:"id" json:"id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time `db:"invoice_date" json:"invoice_date"`
	DueDate       time.Time `db:"due_date" json:"due_date"`

	Supplier  Party             `json:"supplier"`
	Recipient Party             `json:"recipient"`
	LineItems []InvoiceLineItem `json:"line_items"`

	TaxSummary   TaxSummary `json:"tax_summary"`
	IsInterstate bool       `db:"is_interstate" json:"is_interstate"`
	TaxType      TaxType    `db:"tax_type" json:"tax_type"`

	TransportDetails *TransportDetails `json:"transport_details,omitempty"`
	EInvoice         *EInvoiceDetails  `json:"einvoice,omitempty"`

	Status     FilingStatus `db:"status" json:"status"`
	FilingDate *time.Time   `db:"filing_date" json:"filing_date"`
	AckNo      string       `db:"ack_no" json:"ack_no"`

	SimulationConfig SimulationConfig `json:"simulation_config"`
	LearningProgress LearningProgress `json:"learning_progress"`

	ChapterID string    `db:"chapter_id" json:"chapter_id"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ReturnSection is one category bucket inside a GST return.
type ReturnSection struct {
	Count        int             `json:"count"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	IsCompleted  bool            `json:"is_completed"`
}

// RecordDetails holds the twelve fixed sections of a GST return. The section
// set is closed, so it is a typed record rather than a map.
type RecordDetails struct {
	B2BInvoices                  ReturnSection `json:"b2b_invoices"`
	B2CLargeInvoices             ReturnSection `json:"b2c_large_invoices"`
	ExportInvoices               ReturnSection `json:"export_invoices"`
	B2COthers                    ReturnSection `json:"b2c_others"`
	NilRatedSupplies             ReturnSection `json:"nil_rated_supplies"`
	CreditDebitNotesRegistered   ReturnSection `json:"credit_debit_notes_registered"`
	CreditDebitNotesUnregistered ReturnSection `json:"credit_debit_notes_unregistered"`
	TaxLiabilityAdvances         ReturnSection `json:"tax_liability_advances"`
	AdjustmentAdvances           ReturnSection `json:"adjustment_advances"`
	HSNSummary                   ReturnSection `json:"hsn_summary"`
	DocumentsIssued              ReturnSection `json:"documents_issued"`
	EcoSupplies                  ReturnSection `json:"eco_supplies"`
}

// GSTReturn is a simulated GST return filing owned by a learner.
type GSTReturn struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ReturnType    ReturnType `db:"return_type" json:"return_type"`
	FinancialYear string     `db:"financial_year" json:"financial_year"`
	Quarter       string     `db:"quarter" json:"quarter"`
	Period        string     `db:"period" json:"period"`
	GSTIN         string     `db:"gstin" json:"gstin"`

	RecordDetails RecordDetails `json:"record_details"`
	TaxSummary    TaxSummary    `json:"tax_summary"`

	Status               FilingStatus `db:"status" json:"status"`
	FilingDate           *time.Time   `db:"filing_date" json:"filing_date"`
	AcknowledgmentNumber string       `db:"acknowledgment_number" json:"acknowledgment_number"`

	SimulationConfig SimulationConfig `json:"simulation_config"`
	LearningProgress LearningProgress `json:"learning_progress"`

	ChapterID string    `db:"chapter_id" json:"chapter_id"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User is a platform user (learner or admin).
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LearnerStats summarizes a learner's activity across their GST returns.
type LearnerStats struct {
	TotalReturns     int                `json:"total_returns"`
	CompletedReturns int                `json:"completed_returns"`
	ByReturnType     map[ReturnType]int `json:"by_return_type"`
	AverageScore     float64            `json:"average_score"`
	AverageTimeSpent float64            `json:"average_time_spent"`
	TotalAttempts    int                `json:"total_attempts"`
	CompletionRate   float64            `json:"completion_rate"`
}
