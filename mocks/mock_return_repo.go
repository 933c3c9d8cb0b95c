package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstsim/internal/domain"
)

// MockReturnRepo is a mock implementation of port.ReturnRepository.
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) Create(ctx context.Context, ret *domain.GSTReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepo) GetByID(ctx context.Context, returnID uuid.UUID) (*domain.GSTReturn, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTReturn), args.Error(1)
}

func (m *MockReturnRepo) ListByLearner(ctx context.Context, learnerID uuid.UUID, offset, limit int) ([]domain.GSTReturn, int, error) {
	args := m.Called(ctx, learnerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GSTReturn), args.Int(1), args.Error(2)
}

func (m *MockReturnRepo) Update(ctx context.Context, ret *domain.GSTReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepo) SoftDelete(ctx context.Context, returnID uuid.UUID) error {
	args := m.Called(ctx, returnID)
	return args.Error(0)
}
