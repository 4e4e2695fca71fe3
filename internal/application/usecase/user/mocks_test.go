package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateAccount(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockAssetRepo struct{ mock.Mock }

func (m *mockAssetRepo) Create(ctx context.Context, asset *entity.Asset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *mockAssetRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*entity.Asset)
	return a, args.Error(1)
}

func (m *mockAssetRepo) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*entity.Asset)
	return a, args.Error(1)
}

func (m *mockAssetRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).([]*entity.Asset)
	return a, args.Error(1)
}

func (m *mockAssetRepo) Update(ctx context.Context, asset *entity.Asset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *mockAssetRepo) AdjustBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	return m.Called(ctx, userID, id, delta).Error(0)
}

func (m *mockAssetRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockAssetRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) Create(ctx context.Context, record *entity.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRecordRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Record, error) {
	args := m.Called(ctx, userID, id)
	r, _ := args.Get(0).(*entity.Record)
	return r, args.Error(1)
}

func (m *mockRecordRepo) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Record, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).([]*entity.Record)
	return r, args.Error(1)
}

func (m *mockRecordRepo) Update(ctx context.Context, record *entity.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRecordRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockRecordRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// mockTokens only implements what account deletion touches.
type mockTokens struct {
	adapter.TokenService
	mock.Mock
}

func (m *mockTokens) DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// passthroughTransactor runs fn directly and reports whether it committed.
type passthroughTransactor struct {
	committed bool
}

func (t *passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	t.committed = true
	return nil
}

type stubLock struct {
	err      error
	released int
}

func (l *stubLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	return func() { l.released++ }, nil
}
