package usecases_test

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"tripcover.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock VerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, record *entities.VerificationRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockVerificationRepository) GetLiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) GetLiveByPrincipalIDForUpdate(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockVerificationRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVerificationRepository) ListByStatus(ctx context.Context, status entities.VerificationStatus, limit, offset int) ([]*entities.VerificationRecord, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.VerificationRecord), args.Get(1).(int64), args.Error(2)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	return m.Called(ctx, wallet).Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyChange(ctx context.Context, id uuid.UUID, name string, network entities.Network, address string) error {
	return m.Called(ctx, id, name, network, address).Error(0)
}

// Mock ChangeRequestRepository
type MockChangeRequestRepository struct {
	mock.Mock
}

func (m *MockChangeRequestRepository) Create(ctx context.Context, request *entities.WalletChangeRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockChangeRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) GetPendingByWalletID(ctx context.Context, walletID uuid.UUID) (*entities.WalletChangeRequest, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]*entities.WalletChangeRequest, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WalletChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ChangeRequestStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockChangeRequestRepository) ListByStatus(ctx context.Context, status entities.ChangeRequestStatus, limit, offset int) ([]*entities.WalletChangeRequest, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WalletChangeRequest), args.Get(1).(int64), args.Error(2)
}

// Mock BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, content io.Reader, fileName, contentType string) (string, error) {
	args := m.Called(ctx, content, fileName, contentType)
	return args.String(0), args.Error(1)
}
