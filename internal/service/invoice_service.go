package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gstsim/internal/domain"
	"gstsim/internal/engine"
	"gstsim/internal/engine/fieldcheck"
	"gstsim/internal/port"
)

// StartInvoiceSimulationInput is the DTO for starting an invoice simulation.
type StartInvoiceSimulationInput struct {
	InvoiceNumber    string                   `json:"invoice_number" binding:"required"`
	InvoiceDate      time.Time                `json:"invoice_date" binding:"required"`
	DueDate          time.Time                `json:"due_date"`
	Supplier         domain.Party             `json:"supplier"`
	Recipient        domain.Party             `json:"recipient"`
	LineItems        []domain.InvoiceLineItem `json:"line_items"`
	TransportDetails *domain.TransportDetails `json:"transport_details"`
	SimulationConfig domain.SimulationConfig  `json:"simulation_config"`
	ChapterID        string                   `json:"chapter_id"`
	SortOrder        int                      `json:"sort_order"`
	CreatedBy        uuid.UUID                `json:"-"`
}

// UpdateLineItemsInput is the DTO for replacing an invoice's line items.
type UpdateLineItemsInput struct {
	InvoiceID uuid.UUID
	CallerID  uuid.UUID
	Role      domain.UserRole
	LineItems []domain.InvoiceLineItem
}

// ProgressInput is the DTO for recording learner progress on a record.
type ProgressInput struct {
	Steps       []string `json:"steps"`
	CurrentStep string   `json:"current_step"`
	Score       *int     `json:"score"`
	TimeSpent   int      `json:"time_spent_minutes"`
	Attempts    int      `json:"attempts"`
}

// InvoiceService defines the invoice simulation contract.
type InvoiceService interface {
	StartSimulation(ctx context.Context, input *StartInvoiceSimulationInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole) (*domain.Invoice, error)
	ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListByChapter(ctx context.Context, chapterID string, offset, limit int) ([]domain.Invoice, int, error)
	UpdateLineItems(ctx context.Context, input *UpdateLineItemsInput) (*domain.Invoice, error)
	Submit(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole) (*domain.Invoice, error)
	ApplyTransition(ctx context.Context, invoiceID uuid.UUID, event domain.FilingEvent, role domain.UserRole) (*domain.Invoice, error)
	RecordProgress(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole, input *ProgressInput) (*domain.Invoice, error)
	Delete(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole) error
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	now         func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(invoiceRepo port.InvoiceRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo, now: time.Now}
}

func (s *invoiceService) StartSimulation(ctx context.Context, input *StartInvoiceSimulationInput) (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:               uuid.New(),
		InvoiceNumber:    input.InvoiceNumber,
		InvoiceDate:      input.InvoiceDate,
		DueDate:          input.DueDate,
		Supplier:         input.Supplier,
		Recipient:        input.Recipient,
		LineItems:        input.LineItems,
		TransportDetails: input.TransportDetails,
		Status:           domain.FilingStatusDraft,
		SimulationConfig: input.SimulationConfig,
		ChapterID:        input.ChapterID,
		SortOrder:        input.SortOrder,
		CreatedBy:        input.CreatedBy,
		IsActive:         true,
	}

	if err := engine.ValidateInvoiceParties(inv); err != nil {
		return nil, err
	}
	if err := validateLineItemCodes(inv.LineItems); err != nil {
		return nil, err
	}
	if err := engine.RecomputeInvoice(inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	log.Printf("invoiceService: started simulation %s for learner %s", inv.ID, inv.CreatedBy)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(inv.CreatedBy, callerID, role); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.ListByLearner(ctx, learnerID, offset, limit)
}

func (s *invoiceService) ListByChapter(ctx context.Context, chapterID string, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.ListByChapter(ctx, chapterID, offset, limit)
}

// UpdateLineItems replaces the item list and recomputes every derived field
// before persisting. Only DRAFT invoices are editable.
func (s *invoiceService) UpdateLineItems(ctx context.Context, input *UpdateLineItemsInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(inv.CreatedBy, input.CallerID, input.Role); err != nil {
		return nil, err
	}
	if inv.Status != domain.FilingStatusDraft {
		return nil, domain.NewPreconditionError("invoice in status %s is not editable", inv.Status)
	}

	inv.LineItems = input.LineItems
	if err := validateLineItemCodes(inv.LineItems); err != nil {
		return nil, err
	}
	if err := engine.RecomputeInvoice(inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Submit(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(inv.CreatedBy, callerID, role); err != nil {
		return nil, err
	}
	if err := engine.SubmitInvoice(inv, s.now()); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	log.Printf("invoiceService: invoice %s submitted, ack %s", inv.ID, inv.AckNo)
	return inv, nil
}

// ApplyTransition performs a manual admin transition (file/reject/cancel).
func (s *invoiceService) ApplyTransition(ctx context.Context, invoiceID uuid.UUID, event domain.FilingEvent, role domain.UserRole) (*domain.Invoice, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if event == domain.FilingEventSubmit {
		return nil, domain.NewPreconditionError("submit goes through the submit endpoint, not a manual transition")
	}

	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	next, err := engine.Transition(inv.Status, event)
	if err != nil {
		return nil, err
	}
	inv.Status = next
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) RecordProgress(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole, input *ProgressInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(inv.CreatedBy, callerID, role); err != nil {
		return nil, err
	}
	if err := applyProgress(&inv.LearningProgress, input); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, invoiceID, callerID uuid.UUID, role domain.UserRole) error {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(inv.CreatedBy, callerID, role); err != nil {
		return err
	}
	return s.invoiceRepo.SoftDelete(ctx, invoiceID)
}

// authorizeOwner allows the owning learner and any admin.
func authorizeOwner(ownerID, callerID uuid.UUID, role domain.UserRole) error {
	if role == domain.RoleAdmin || ownerID == callerID {
		return nil
	}
	return domain.ErrForbidden
}

// applyProgress routes a progress DTO through the engine's tracker operations.
func applyProgress(p *domain.LearningProgress, input *ProgressInput) error {
	if len(input.Steps) > 0 {
		engine.MarkStepsCompleted(p, input.Steps)
	}
	if input.CurrentStep != "" {
		engine.SetCurrentStep(p, input.CurrentStep)
	}
	if input.Score != nil {
		if err := engine.SetScore(p, *input.Score); err != nil {
			return err
		}
	}
	if input.TimeSpent != 0 {
		if err := engine.AddTimeSpent(p, input.TimeSpent); err != nil {
			return err
		}
	}
	if input.Attempts != 0 {
		if err := engine.AddAttempts(p, input.Attempts); err != nil {
			return err
		}
	}
	return nil
}

// validateLineItemCodes checks HSN codes and units before any math runs.
func validateLineItemCodes(items []domain.InvoiceLineItem) error {
	for i, item := range items {
		if item.HSNCode != "" && !fieldcheck.HSN(item.HSNCode) {
			return domain.NewValidationError(
				fmt.Sprintf("line_items[%d].hsn_code", i), "HSN code must be 4 to 8 digits")
		}
		if item.Unit != "" && !domain.KnownUnits[item.Unit] {
			return domain.NewValidationError(
				fmt.Sprintf("line_items[%d].unit", i), "unit is not a recognized unit of measurement")
		}
	}
	return nil
}
