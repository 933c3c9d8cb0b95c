package port

import (
	"context"

	"github.com/google/uuid"

	"gstsim/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// InvoiceRepository defines the contract for simulated invoice persistence.
// Listing methods exclude soft-deleted records.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListByChapter(ctx context.Context, chapterID string, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	SoftDelete(ctx context.Context, invoiceID uuid.UUID) error
}

// ReturnRepository defines the contract for simulated GST return persistence.
type ReturnRepository interface {
	Create(ctx context.Context, ret *domain.GSTReturn) error
	GetByID(ctx context.Context, returnID uuid.UUID) (*domain.GSTReturn, error)
	ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.GSTReturn, int, error)
	Update(ctx context.Context, ret *domain.GSTReturn) error
	SoftDelete(ctx context.Context, returnID uuid.UUID) error
}
