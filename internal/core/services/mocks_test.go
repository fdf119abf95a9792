package services_test

import (
	"context"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock QuotationRepository ---
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) ListQuotations(ctx context.Context, tenantID domain.TenantID) ([]domain.QuotationRecord, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuotationRecord), args.Error(1)
}

func (m *MockQuotationRepository) SaveQuotations(ctx context.Context, records []domain.QuotationRecord) (int64, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TenantSettingsRepository ---
type MockTenantSettingsRepository struct {
	mock.Mock
}

func (m *MockTenantSettingsRepository) FindTenantSettings(ctx context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

// --- Mock RateTypeRepository ---
type MockRateTypeRepository struct {
	mock.Mock
}

func (m *MockRateTypeRepository) ListRateTypeDetails(ctx context.Context, tenantID domain.TenantID) (domain.RateTypeDetails, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RateTypeDetails), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode domain.CurrencyCode) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode domain.CurrencyCode) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) FractionDigits(ctx context.Context, currencyCode domain.CurrencyCode) (int32, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(int32), args.Error(1)
}
