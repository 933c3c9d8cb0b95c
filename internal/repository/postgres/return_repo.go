package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstsim/internal/domain"
	"gstsim/internal/port"
)

type returnRepo struct {
	db *sqlx.DB
}

// NewReturnRepo creates a new PostgreSQL-backed ReturnRepository.
func NewReturnRepo(db *sqlx.DB) port.ReturnRepository {
	return &returnRepo{db: db}
}

// returnRow maps the gst_returns table; nested documents live in JSONB columns.
type returnRow struct {
	ID                   uuid.UUID  `db:"id"`
	ReturnType           string     `db:"return_type"`
	FinancialYear        string     `db:"financial_year"`
	Quarter              string     `db:"quarter"`
	Period               string     `db:"period"`
	GSTIN                string     `db:"gstin"`
	RecordDetails        []byte     `db:"record_details"`
	TaxSummary           []byte     `db:"tax_summary"`
	Status               string     `db:"status"`
	FilingDate           *time.Time `db:"filing_date"`
	AcknowledgmentNumber string     `db:"acknowledgment_number"`
	SimulationConfig     []byte     `db:"simulation_config"`
	LearningProgress     []byte     `db:"learning_progress"`
	ChapterID            string     `db:"chapter_id"`
	CreatedBy            uuid.UUID  `db:"created_by"`
	IsActive             bool       `db:"is_active"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

func returnToRow(ret *domain.GSTReturn) (*returnRow, error) {
	row := &returnRow{
		ID:                   ret.ID,
		ReturnType:           string(ret.ReturnType),
		FinancialYear:        ret.FinancialYear,
		Quarter:              ret.Quarter,
		Period:               ret.Period,
		GSTIN:                ret.GSTIN,
		Status:               string(ret.Status),
		FilingDate:           ret.FilingDate,
		AcknowledgmentNumber: ret.AcknowledgmentNumber,
		ChapterID:            ret.ChapterID,
		CreatedBy:            ret.CreatedBy,
		IsActive:             ret.IsActive,
		CreatedAt:            ret.CreatedAt,
		UpdatedAt:            ret.UpdatedAt,
	}

	var err error
	if row.RecordDetails, err = json.Marshal(ret.RecordDetails); err != nil {
		return nil, fmt.Errorf("marshaling record details: %w", err)
	}
	if row.TaxSummary, err = json.Marshal(ret.TaxSummary); err != nil {
		return nil, fmt.Errorf("marshaling tax summary: %w", err)
	}
	if row.SimulationConfig, err = json.Marshal(ret.SimulationConfig); err != nil {
		return nil, fmt.Errorf("marshaling simulation config: %w", err)
	}
	if row.LearningProgress, err = json.Marshal(ret.LearningProgress); err != nil {
		return nil, fmt.Errorf("marshaling learning progress: %w", err)
	}
	return row, nil
}

func returnFromRow(row *returnRow) (*domain.GSTReturn, error) {
	ret := &domain.GSTReturn{
		ID:                   row.ID,
		ReturnType:           domain.ReturnType(row.ReturnType),
		FinancialYear:        row.FinancialYear,
		Quarter:              row.Quarter,
		Period:               row.Period,
		GSTIN:                row.GSTIN,
		Status:               domain.FilingStatus(row.Status),
		FilingDate:           row.FilingDate,
		AcknowledgmentNumber: row.AcknowledgmentNumber,
		ChapterID:            row.ChapterID,
		CreatedBy:            row.CreatedBy,
		IsActive:             row.IsActive,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}

	if err := json.Unmarshal(row.RecordDetails, &ret.RecordDetails); err != nil {
		return nil, fmt.Errorf("unmarshaling record details: %w", err)
	}
	if err := json.Unmarshal(row.TaxSummary, &ret.TaxSummary); err != nil {
		return nil, fmt.Errorf("unmarshaling tax summary: %w", err)
	}
	if err := json.Unmarshal(row.SimulationConfig, &ret.SimulationConfig); err != nil {
		return nil, fmt.Errorf("unmarshaling simulation config: %w", err)
	}
	if err := json.Unmarshal(row.LearningProgress, &ret.LearningProgress); err != nil {
		return nil, fmt.Errorf("unmarshaling learning progress: %w", err)
	}
	return ret, nil
}

func (r *returnRepo) Create(ctx context.Context, ret *domain.GSTReturn) error {
	now := time.Now().UTC()
	ret.CreatedAt = now
	ret.UpdatedAt = now

	row, err := returnToRow(ret)
	if err != nil {
		return fmt.Errorf("returnRepo.Create: %w", err)
	}

	query := `INSERT INTO gst_returns (
		id, return_type, financial_year, quarter, period, gstin,
		record_details, tax_summary, status, filing_date, acknowledgment_number,
		simulation_config, learning_progress, chapter_id, created_by, is_active,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.ReturnType, row.FinancialYear, row.Quarter, row.Period, row.GSTIN,
		row.RecordDetails, row.TaxSummary, row.Status, row.FilingDate, row.AcknowledgmentNumber,
		row.SimulationConfig, row.LearningProgress, row.ChapterID, row.CreatedBy, row.IsActive,
		row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("returnRepo.Create: %w", err)
	}
	return nil
}

func (r *returnRepo) GetByID(ctx context.Context, returnID uuid.UUID) (*domain.GSTReturn, error) {
	var row returnRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM gst_returns WHERE id = $1 AND is_active = TRUE", returnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReturnNotFound
		}
		return nil, fmt.Errorf("returnRepo.GetByID: %w", err)
	}
	return returnFromRow(&row)
}

func (r *returnRepo) ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.GSTReturn, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM gst_returns WHERE created_by = $1 AND is_active = TRUE", learnerID)
	if err != nil {
		return nil, 0, fmt.Errorf("returnRepo.ListByLearner count: %w", err)
	}

	var rows []returnRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT * FROM gst_returns WHERE created_by = $1 AND is_active = TRUE
		 ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		learnerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("returnRepo.ListByLearner: %w", err)
	}

	returns := make([]domain.GSTReturn, 0, len(rows))
	for i := range rows {
		ret, err := returnFromRow(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		returns = append(returns, *ret)
	}
	return returns, total, nil
}

func (r *returnRepo) Update(ctx context.Context, ret *domain.GSTReturn) error {
	ret.UpdatedAt = time.Now().UTC()

	row, err := returnToRow(ret)
	if err != nil {
		return fmt.Errorf("returnRepo.Update: %w", err)
	}

	query := `UPDATE gst_returns SET
		return_type = $2, financial_year = $3, quarter = $4, period = $5, gstin = $6,
		record_details = $7, tax_summary = $8, status = $9, filing_date = $10,
		acknowledgment_number = $11, simulation_config = $12, learning_progress = $13,
		chapter_id = $14, is_active = $15, updated_at = $16
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		row.ID, row.ReturnType, row.FinancialYear, row.Quarter, row.Period, row.GSTIN,
		row.RecordDetails, row.TaxSummary, row.Status, row.FilingDate,
		row.AcknowledgmentNumber, row.SimulationConfig, row.LearningProgress,
		row.ChapterID, row.IsActive, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("returnRepo.Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("returnRepo.Update rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}

func (r *returnRepo) SoftDelete(ctx context.Context, returnID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE gst_returns SET is_active = FALSE, updated_at = $2 WHERE id = $1 AND is_active = TRUE",
		returnID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("returnRepo.SoftDelete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("returnRepo.SoftDelete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}
