package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsim/internal/domain"
	"gstsim/internal/service"
	"gstsim/mocks"
)

func testParty(name, gstin string) domain.Party {
	return domain.Party{
		Name:  name,
		GSTIN: gstin,
		Address: domain.Address{
			Street:  "Main Road",
			City:    "Raipur",
			State:   "Chhattisgarh",
			Pincode: "492001",
			Country: "India",
		},
	}
}

func testLineItem() domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		ItemName:  "Steel Rods",
		HSNCode:   "7214",
		Quantity:  decimal.NewFromInt(10),
		Unit:      domain.UnitKg,
		UnitPrice: decimal.NewFromInt(100),
		CGSTRate:  decimal.NewFromInt(9),
		SGSTRate:  decimal.NewFromInt(9),
	}
}

func testDraftInvoice(learnerID uuid.UUID) *domain.Invoice {
	return &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-001",
		InvoiceDate:   time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		Supplier:      testParty("Supplier Co", "22AAAAA0000A1Z5"),
		Recipient:     testParty("Recipient Co", ""),
		LineItems:     []domain.InvoiceLineItem{testLineItem()},
		Status:        domain.FilingStatusDraft,
		CreatedBy:     learnerID,
		IsActive:      true,
	}
}

func TestInvoiceStartSimulation(t *testing.T) {
	ctx := context.Background()
	learnerID := uuid.New()

	t.Run("computes totals before persisting", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepo)
		var persisted *domain.Invoice
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).
			Run(func(args mock.Arguments) { persisted = args.Get(1).(*domain.Invoice) }).
			Return(nil)

		svc := service.NewInvoiceService(repo)
		inv, err := svc.StartSimulation(ctx, &service.StartInvoiceSimulationInput{
			InvoiceNumber: "INV-001",
			InvoiceDate:   time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			Supplier:      testParty("Supplier Co", "22AAAAA0000A1Z5"),
			Recipient:     testParty("Recipient Co", ""),
			LineItems:     []domain.InvoiceLineItem{testLineItem()},
			CreatedBy:     learnerID,
		})
		require.NoError(t, err)
		require.NotNil(t, persisted)

		assert.Equal(t, domain.FilingStatusDraft, inv.Status)
		assert.True(t, inv.TaxSummary.GrandTotal.Equal(decimal.NewFromInt(1180)),
			"grand total = %s", inv.TaxSummary.GrandTotal)
		assert.False(t, inv.IsInterstate)
		assert.Equal(t, domain.TaxTypeCGSTSGST, inv.TaxType)
		assert.Same(t, inv, persisted)
		repo.AssertExpectations(t)
	})

	t.Run("invalid supplier GSTIN rejected before persisting", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepo)
		svc := service.NewInvoiceService(repo)

		_, err := svc.StartSimulation(ctx, &service.StartInvoiceSimulationInput{
			InvoiceNumber: "INV-002",
			InvoiceDate:   time.Now(),
			Supplier:      testParty("Supplier Co", "BOGUS"),
			Recipient:     testParty("Recipient Co", ""),
			CreatedBy:     learnerID,
		})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "supplier.gstin", validationErr.Field)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown unit rejected", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepo)
		svc := service.NewInvoiceService(repo)

		item := testLineItem()
		item.Unit = "BARREL"
		_, err := svc.StartSimulation(ctx, &service.StartInvoiceSimulationInput{
			InvoiceNumber: "INV-003",
			InvoiceDate:   time.Now(),
			Supplier:      testParty("Supplier Co", "22AAAAA0000A1Z5"),
			Recipient:     testParty("Recipient Co", ""),
			LineItems:     []domain.InvoiceLineItem{item},
			CreatedBy:     learnerID,
		})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "line_items[0].unit", validationErr.Field)
	})
}

func TestInvoiceGetByID_Ownership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	inv := testDraftInvoice(owner)

	repo := new(mocks.MockInvoiceRepo)
	repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	svc := service.NewInvoiceService(repo)

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.GetByID(ctx, inv.ID, owner, domain.RoleLearner)
		require.NoError(t, err)
		assert.Equal(t, inv.ID, got.ID)
	})

	t.Run("other learner forbidden", func(t *testing.T) {
		_, err := svc.GetByID(ctx, inv.ID, stranger, domain.RoleLearner)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := svc.GetByID(ctx, inv.ID, stranger, domain.RoleAdmin)
		assert.NoError(t, err)
	})
}

func TestInvoiceUpdateLineItems(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("recomputes totals on update", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		repo.On("Update", ctx, inv).Return(nil)
		svc := service.NewInvoiceService(repo)

		item := testLineItem()
		item.Quantity = decimal.NewFromInt(20)
		got, err := svc.UpdateLineItems(ctx, &service.UpdateLineItemsInput{
			InvoiceID: inv.ID,
			CallerID:  owner,
			Role:      domain.RoleLearner,
			LineItems: []domain.InvoiceLineItem{item},
		})
		require.NoError(t, err)
		assert.True(t, got.TaxSummary.GrandTotal.Equal(decimal.NewFromInt(2360)),
			"grand total = %s", got.TaxSummary.GrandTotal)
		repo.AssertExpectations(t)
	})

	t.Run("submitted invoice is not editable", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		inv.Status = domain.FilingStatusSubmitted
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		svc := service.NewInvoiceService(repo)

		_, err := svc.UpdateLineItems(ctx, &service.UpdateLineItemsInput{
			InvoiceID: inv.ID,
			CallerID:  owner,
			Role:      domain.RoleLearner,
			LineItems: []domain.InvoiceLineItem{testLineItem()},
		})
		var preconditionErr *domain.PreconditionError
		assert.ErrorAs(t, err, &preconditionErr)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestInvoiceSubmit(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("stamps status, date and acknowledgment", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		repo.On("Update", ctx, inv).Return(nil)
		svc := service.NewInvoiceService(repo)

		got, err := svc.Submit(ctx, inv.ID, owner, domain.RoleLearner)
		require.NoError(t, err)

		assert.Equal(t, domain.FilingStatusSubmitted, got.Status)
		require.NotNil(t, got.FilingDate)
		assert.Regexp(t, `^ACK\d{14}`, got.AckNo)
		assert.Contains(t, got.LearningProgress.CompletedSteps, "return-submitted")
		assert.Equal(t, 20, got.LearningProgress.Score)
		repo.AssertExpectations(t)
	})

	t.Run("second submit rejected", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		inv.Status = domain.FilingStatusSubmitted
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		svc := service.NewInvoiceService(repo)

		_, err := svc.Submit(ctx, inv.ID, owner, domain.RoleLearner)
		var stateErr *domain.IllegalStateError
		assert.ErrorAs(t, err, &stateErr)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestInvoiceApplyTransition(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("learner forbidden", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepo)
		svc := service.NewInvoiceService(repo)

		_, err := svc.ApplyTransition(ctx, uuid.New(), domain.FilingEventFile, domain.RoleLearner)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin files a submitted invoice", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		inv.Status = domain.FilingStatusSubmitted
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		repo.On("Update", ctx, inv).Return(nil)
		svc := service.NewInvoiceService(repo)

		got, err := svc.ApplyTransition(ctx, inv.ID, domain.FilingEventFile, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.FilingStatusFiled, got.Status)
	})

	t.Run("submit event not allowed manually", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepo)
		svc := service.NewInvoiceService(repo)

		_, err := svc.ApplyTransition(ctx, uuid.New(), domain.FilingEventSubmit, domain.RoleAdmin)
		var preconditionErr *domain.PreconditionError
		assert.ErrorAs(t, err, &preconditionErr)
	})
}

func TestInvoiceRecordProgress(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("negative time delta rejected", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		svc := service.NewInvoiceService(repo)

		_, err := svc.RecordProgress(ctx, inv.ID, owner, domain.RoleLearner, &service.ProgressInput{TimeSpent: -5})
		var preconditionErr *domain.PreconditionError
		assert.ErrorAs(t, err, &preconditionErr)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("applies steps, score and counters", func(t *testing.T) {
		inv := testDraftInvoice(owner)
		repo := new(mocks.MockInvoiceRepo)
		repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
		repo.On("Update", ctx, inv).Return(nil)
		svc := service.NewInvoiceService(repo)

		score := 55
		got, err := svc.RecordProgress(ctx, inv.ID, owner, domain.RoleLearner, &service.ProgressInput{
			Steps:       []string{"supplier-details", "supplier-details", "line-items"},
			CurrentStep: "review",
			Score:       &score,
			TimeSpent:   12,
			Attempts:    1,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"supplier-details", "line-items"}, got.LearningProgress.CompletedSteps)
		assert.Equal(t, "review", got.LearningProgress.CurrentStep)
		assert.Equal(t, 55, got.LearningProgress.Score)
		assert.Equal(t, 12, got.LearningProgress.TimeSpentMinutes)
		assert.Equal(t, 1, got.LearningProgress.Attempts)
	})
}

func TestInvoiceDelete(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	inv := testDraftInvoice(owner)

	repo := new(mocks.MockInvoiceRepo)
	repo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	repo.On("SoftDelete", ctx, inv.ID).Return(nil)
	svc := service.NewInvoiceService(repo)

	require.NoError(t, svc.Delete(ctx, inv.ID, owner, domain.RoleLearner))
	repo.AssertExpectations(t)
}
