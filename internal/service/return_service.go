package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstsim/internal/domain"
	"gstsim/internal/engine"
	"gstsim/internal/port"
)

// StartReturnSimulationInput is the DTO for starting a return simulation.
type StartReturnSimulationInput struct {
	ReturnType       domain.ReturnType       `json:"return_type" binding:"required"`
	FinancialYear    string                  `json:"financial_year" binding:"required"`
	Quarter          string                  `json:"quarter"`
	Period           string                  `json:"period" binding:"required"`
	GSTIN            string                  `json:"gstin" binding:"required"`
	RecordDetails    domain.RecordDetails    `json:"record_details"`
	SimulationConfig domain.SimulationConfig `json:"simulation_config"`
	ChapterID        string                  `json:"chapter_id"`
	CreatedBy        uuid.UUID               `json:"-"`
}

// UpdateSectionInput is the DTO for replacing one named section of a return.
type UpdateSectionInput struct {
	ReturnID    uuid.UUID
	CallerID    uuid.UUID
	Role        domain.UserRole
	SectionName string
	Section     domain.ReturnSection
}

// ReturnService defines the return simulation contract.
type ReturnService interface {
	StartSimulation(ctx context.Context, input *StartReturnSimulationInput) (*domain.GSTReturn, error)
	GetByID(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole) (*domain.GSTReturn, error)
	ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.GSTReturn, int, error)
	UpdateSection(ctx context.Context, input *UpdateSectionInput) (*domain.GSTReturn, error)
	Submit(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole) (*domain.GSTReturn, error)
	ApplyTransition(ctx context.Context, returnID uuid.UUID, event domain.FilingEvent, role domain.UserRole) (*domain.GSTReturn, error)
	RecordProgress(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole, input *ProgressInput) (*domain.GSTReturn, error)
	Delete(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole) error
}

type returnService struct {
	returnRepo port.ReturnRepository
	now        func() time.Time
}

// NewReturnService creates a new ReturnService implementation.
func NewReturnService(returnRepo port.ReturnRepository) ReturnService {
	return &returnService{returnRepo: returnRepo, now: time.Now}
}

func (s *returnService) StartSimulation(ctx context.Context, input *StartReturnSimulationInput) (*domain.GSTReturn, error) {
	ret := &domain.GSTReturn{
		ID:               uuid.New(),
		ReturnType:       input.ReturnType,
		FinancialYear:    input.FinancialYear,
		Quarter:          input.Quarter,
		Period:           input.Period,
		GSTIN:            input.GSTIN,
		RecordDetails:    input.RecordDetails,
		Status:           domain.FilingStatusDraft,
		SimulationConfig: input.SimulationConfig,
		ChapterID:        input.ChapterID,
		CreatedBy:        input.CreatedBy,
		IsActive:         true,
	}

	if err := engine.ValidateReturnHeader(ret); err != nil {
		return nil, err
	}
	engine.RecomputeReturn(ret)
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	log.Printf("returnService: started %s simulation %s for learner %s", ret.ReturnType, ret.ID, ret.CreatedBy)
	return ret, nil
}

func (s *returnService) GetByID(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole) (*domain.GSTReturn, error) {
	ret, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ret.CreatedBy, callerID, role); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *returnService) ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.GSTReturn, int, error) {
	return s.returnRepo.ListByLearner(ctx, learnerID, offset, limit)
}

// UpdateSection replaces one named section and recomputes the return totals
// before persisting. Only DRAFT returns are editable.
func (s *returnService) UpdateSection(ctx context.Context, input *UpdateSectionInput) (*domain.GSTReturn, error) {
	ret, err := s.returnRepo.GetByID(ctx, input.ReturnID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ret.CreatedBy, input.CallerID, input.Role); err != nil {
		return nil, err
	}
	if ret.Status != domain.FilingStatusDraft {
		return nil, domain.NewPreconditionError("return in status %s is not editable", ret.Status)
	}

	section, ok := engine.SectionByName(&ret.RecordDetails, input.SectionName)
	if !ok {
		return nil, domain.ErrUnknownReturnSection
	}
	if input.Section.Count < 0 {
		return nil, domain.NewPreconditionError("section count cannot be negative")
	}
	if input.Section.TaxableValue.LessThan(decimal.Zero) || input.Section.TaxAmount.LessThan(decimal.Zero) {
		return nil, domain.NewPreconditionError("section amounts cannot be negative")
	}
	*section = input.Section

	engine.RecomputeReturn(ret)
	if err := s.returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *returnService) Submit(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole) (*domain.GSTReturn, error) {
	ret, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ret.CreatedBy, callerID, role); err != nil {
		return nil, err
	}
	if err := engine.SubmitReturn(ret, s.now()); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}

	log.Printf("returnService: return %s submitted, ack %s", ret.ID, ret.AcknowledgmentNumber)
	return ret, nil
}

// ApplyTransition performs a manual admin transition (file/reject/cancel).
func (s *returnService) ApplyTransition(ctx context.Context, returnID uuid.UUID, event domain.FilingEvent, role domain.UserRole) (*domain.GSTReturn, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if event == domain.FilingEventSubmit {
		return nil, domain.NewPreconditionError("submit goes through the submit endpoint, not a manual transition")
	}

	ret, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	next, err := engine.Transition(ret.Status, event)
	if err != nil {
		return nil, err
	}
	ret.Status = next
	if err := s.returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *returnService) RecordProgress(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole, input *ProgressInput) (*domain.GSTReturn, error) {
	ret, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ret.CreatedBy, callerID, role); err != nil {
		return nil, err
	}
	if err := applyProgress(&ret.LearningProgress, input); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Update(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *returnService) Delete(ctx context.Context, returnID, callerID uuid.UUID, role domain.UserRole) error {
	ret, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ret.CreatedBy, callerID, role); err != nil {
		return err
	}
	return s.returnRepo.SoftDelete(ctx, returnID)
}
