package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstsim/internal/domain"
	"gstsim/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// invoiceRow maps the invoices table; nested documents live in JSONB columns.
type invoiceRow struct {
	ID               uuid.UUID  `db:"id"`
	InvoiceNumber    string     `db:"invoice_number"`
	InvoiceDate      time.Time  `db:"invoice_date"`
	DueDate          time.Time  `db:"due_date"`
	Supplier         []byte     `db:"supplier"`
	Recipient        []byte     `db:"recipient"`
	LineItems        []byte     `db:"line_items"`
	TaxSummary       []byte     `db:"tax_summary"`
	IsInterstate     bool       `db:"is_interstate"`
	TaxType          string     `db:"tax_type"`
	TransportDetails []byte     `db:"transport_details"`
	EInvoice         []byte     `db:"einvoice"`
	Status           string     `db:"status"`
	FilingDate       *time.Time `db:"filing_date"`
	AckNo            string     `db:"ack_no"`
	SimulationConfig []byte     `db:"simulation_config"`
	LearningProgress []byte     `db:"learning_progress"`
	ChapterID        string     `db:"chapter_id"`
	CreatedBy        uuid.UUID  `db:"created_by"`
	IsActive         bool       `db:"is_active"`
	SortOrder        int        `db:"sort_order"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func invoiceToRow(inv *domain.Invoice) (*invoiceRow, error) {
	row := &invoiceRow{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		IsInterstate:  inv.IsInterstate,
		TaxType:       string(inv.TaxType),
		Status:        string(inv.Status),
		FilingDate:    inv.FilingDate,
		AckNo:         inv.AckNo,
		ChapterID:     inv.ChapterID,
		CreatedBy:     inv.CreatedBy,
		IsActive:      inv.IsActive,
		SortOrder:     inv.SortOrder,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}

	var err error
	if row.Supplier, err = json.Marshal(inv.Supplier); err != nil {
		return nil, fmt.Errorf("marshaling supplier: %w", err)
	}
	if row.Recipient, err = json.Marshal(inv.Recipient); err != nil {
		return nil, fmt.Errorf("marshaling recipient: %w", err)
	}
	if row.LineItems, err = json.Marshal(inv.LineItems); err != nil {
		return nil, fmt.Errorf("marshaling line items: %w", err)
	}
	if row.TaxSummary, err = json.Marshal(inv.TaxSummary); err != nil {
		return nil, fmt.Errorf("marshaling tax summary: %w", err)
	}
	if row.SimulationConfig, err = json.Marshal(inv.SimulationConfig); err != nil {
		return nil, fmt.Errorf("marshaling simulation config: %w", err)
	}
	if row.LearningProgress, err = json.Marshal(inv.LearningProgress); err != nil {
		return nil, fmt.Errorf("marshaling learning progress: %w", err)
	}
	if inv.TransportDetails != nil {
		if row.TransportDetails, err = json.Marshal(inv.TransportDetails); err != nil {
			return nil, fmt.Errorf("marshaling transport details: %w", err)
		}
	}
	if inv.EInvoice != nil {
		if row.EInvoice, err = json.Marshal(inv.EInvoice); err != nil {
			return nil, fmt.Errorf("marshaling einvoice: %w", err)
		}
	}
	return row, nil
}

func invoiceFromRow(row *invoiceRow) (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:            row.ID,
		InvoiceNumber: row.InvoiceNumber,
		InvoiceDate:   row.InvoiceDate,
		DueDate:       row.DueDate,
		IsInterstate:  row.IsInterstate,
		TaxType:       domain.TaxType(row.TaxType),
		Status:        domain.FilingStatus(row.Status),
		FilingDate:    row.FilingDate,
		AckNo:         row.AckNo,
		ChapterID:     row.ChapterID,
		CreatedBy:     row.CreatedBy,
		IsActive:      row.IsActive,
		SortOrder:     row.SortOrder,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	if err := json.Unmarshal(row.Supplier, &inv.Supplier); err != nil {
		return nil, fmt.Errorf("unmarshaling supplier: %w", err)
	}
	if err := json.Unmarshal(row.Recipient, &inv.Recipient); err != nil {
		return nil, fmt.Errorf("unmarshaling recipient: %w", err)
	}
	if err := json.Unmarshal(row.LineItems, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("unmarshaling line items: %w", err)
	}
	if err := json.Unmarshal(row.TaxSummary, &inv.TaxSummary); err != nil {
		return nil, fmt.Errorf("unmarshaling tax summary: %w", err)
	}
	if err := json.Unmarshal(row.SimulationConfig, &inv.SimulationConfig); err != nil {
		return nil, fmt.Errorf("unmarshaling simulation config: %w", err)
	}
	if err := json.Unmarshal(row.LearningProgress, &inv.LearningProgress); err != nil {
		return nil, fmt.Errorf("unmarshaling learning progress: %w", err)
	}
	if len(row.TransportDetails) > 0 {
		inv.TransportDetails = &domain.TransportDetails{}
		if err := json.Unmarshal(row.TransportDetails, inv.TransportDetails); err != nil {
			return nil, fmt.Errorf("unmarshaling transport details: %w", err)
		}
	}
	if len(row.EInvoice) > 0 {
		inv.EInvoice = &domain.EInvoiceDetails{}
		if err := json.Unmarshal(row.EInvoice, inv.EInvoice); err != nil {
			return nil, fmt.Errorf("unmarshaling einvoice: %w", err)
		}
	}
	return inv, nil
}

const invoiceColumns = `id, invoice_number, invoice_date, due_date, supplier, recipient,
	line_items, tax_summary, is_interstate, tax_type, transport_details, einvoice,
	status, filing_date, ack_no, simulation_config, learning_progress,
	chapter_id, created_by, is_active, sort_order, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	row, err := invoiceToRow(inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.InvoiceNumber, row.InvoiceDate, row.DueDate, row.Supplier, row.Recipient,
		row.LineItems, row.TaxSummary, row.IsInterstate, row.TaxType, row.TransportDetails, row.EInvoice,
		row.Status, row.FilingDate, row.AckNo, row.SimulationConfig, row.LearningProgress,
		row.ChapterID, row.CreatedBy, row.IsActive, row.SortOrder, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM invoices WHERE id = $1 AND is_active = TRUE", invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return invoiceFromRow(&row)
}

func (r *invoiceRepo) ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE created_by = $1 AND is_active = TRUE", learnerID)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByLearner count: %w", err)
	}

	var rows []invoiceRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT * FROM invoices WHERE created_by = $1 AND is_active = TRUE
		 ORDER BY sort_order, created_at DESC OFFSET $2 LIMIT $3`,
		learnerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByLearner: %w", err)
	}
	return invoicesFromRows(rows, total)
}

func (r *invoiceRepo) ListByChapter(ctx context.Context, chapterID string, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE chapter_id = $1 AND is_active = TRUE", chapterID)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByChapter count: %w", err)
	}

	var rows []invoiceRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT * FROM invoices WHERE chapter_id = $1 AND is_active = TRUE
		 ORDER BY sort_order, created_at DESC OFFSET $2 LIMIT $3`,
		chapterID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByChapter: %w", err)
	}
	return invoicesFromRows(rows, total)
}

func invoicesFromRows(rows []invoiceRow, total int) ([]domain.Invoice, int, error) {
	invoices := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := invoiceFromRow(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()

	row, err := invoiceToRow(inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}

	query := `UPDATE invoices SET
		invoice_number = $2, invoice_date = $3, due_date = $4, supplier = $5, recipient = $6,
		line_items = $7, tax_summary = $8, is_interstate = $9, tax_type = $10,
		transport_details = $11, einvoice = $12, status = $13, filing_date = $14, ack_no = $15,
		simulation_config = $16, learning_progress = $17, chapter_id = $18,
		is_active = $19, sort_order = $20, updated_at = $21
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		row.ID, row.InvoiceNumber, row.InvoiceDate, row.DueDate, row.Supplier, row.Recipient,
		row.LineItems, row.TaxSummary, row.IsInterstate, row.TaxType,
		row.TransportDetails, row.EInvoice, row.Status, row.FilingDate, row.AckNo,
		row.SimulationConfig, row.LearningProgress, row.ChapterID,
		row.IsActive, row.SortOrder, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) SoftDelete(ctx context.Context, invoiceID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET is_active = FALSE, updated_at = $2 WHERE id = $1 AND is_active = TRUE",
		invoiceID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
