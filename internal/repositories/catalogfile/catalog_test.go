package catalogfile_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/SscSPs/fx_conversion_engine/internal/dto"
	"github.com/SscSPs/fx_conversion_engine/internal/repositories/catalogfile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLoad(t *testing.T) {
	ctx := context.Background()
	c, err := catalogfile.Load("testdata/catalog.json")
	require.NoError(t, err)

	assert.Equal(t, domain.TenantID("tenant-1"), c.Tenant())

	records, err := c.ListQuotations(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(1), records[0].FromCurrencyFactor)
	assert.Equal(t, int64(100), records[2].FromCurrencyFactor)
	assert.Equal(t, domain.TenantID("tenant-1"), records[2].TenantID)

	settings, err := c.FindTenantSettings(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.DataSource{ProviderCode: "ECB", DataSourceID: "DAILY"}, settings.Default)

	details, err := c.ListRateTypeDetails(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RateTypeDetail{ReferenceCurrency: "EUR", AllowInversion: true}, details.Lookup("M"))

	usd, err := c.FindCurrencyByCode(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, int32(2), usd.FractionDigits)
	_, err = c.FindCurrencyByCode(ctx, "JPY")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoad_OtherTenantSeesNothing(t *testing.T) {
	ctx := context.Background()
	c, err := catalogfile.Load("testdata/catalog.json")
	require.NoError(t, err)

	records, err := c.ListQuotations(ctx, "tenant-2")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = c.FindTenantSettings(ctx, "tenant-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalogfile.Load("testdata/missing.json")
	assert.Error(t, err)
}

func validQuotation() dto.QuotationRequest {
	return dto.QuotationRequest{
		ProviderCode: "ECB",
		DataSourceID: "DAILY",
		RateType:     "M",
		RateValue:    ptr(decimal.RequireFromString("1.08")),
		FromCurrency: "EUR",
		ToCurrency:   "USD",
		ValidFrom:    ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestNew_RejectsInvalidDocuments(t *testing.T) {
	samePair := validQuotation()
	samePair.ToCurrency = "EUR"
	noRate := validQuotation()
	noRate.RateValue = nil
	badCurrency := validQuotation()
	badCurrency.FromCurrency = "eur"
	negativeFactor := validQuotation()
	negativeFactor.ToCurrencyFactor = ptr(int64(-1))

	tests := map[string]catalogfile.Document{
		"same pair":         {Quotations: []dto.QuotationRequest{samePair}},
		"missing rate":      {Quotations: []dto.QuotationRequest{noRate}},
		"bad currency":      {Quotations: []dto.QuotationRequest{badCurrency}},
		"negative factor":   {Quotations: []dto.QuotationRequest{negativeFactor}},
		"bad reference":     {RateTypes: map[string]domain.RateTypeDetail{"M": {ReferenceCurrency: "euro"}}},
		"negative digits":   {Currencies: map[string]int32{"USD": -1}},
		"incomplete source": {DefaultSource: &dto.DataSourceRequest{ProviderCode: "ECB"}},
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := catalogfile.New(doc)
			assert.Error(t, err)
		})
	}
}

func TestNew_DefaultsTenantAndLeavesSettingsUnconfigured(t *testing.T) {
	c, err := catalogfile.New(catalogfile.Document{Quotations: []dto.QuotationRequest{validQuotation()}})
	require.NoError(t, err)

	assert.Equal(t, catalogfile.DefaultTenant, c.Tenant())
	_, err = c.FindTenantSettings(context.Background(), catalogfile.DefaultTenant)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveQuotations_SkipsKnownIdentity(t *testing.T) {
	ctx := context.Background()
	c, err := catalogfile.New(catalogfile.Document{Quotations: []dto.QuotationRequest{validQuotation()}})
	require.NoError(t, err)

	existing := c.Records()[0]
	newer := existing
	newer.ValidFrom = existing.ValidFrom.Add(24 * time.Hour)
	foreign := existing
	foreign.TenantID = "tenant-9"

	inserted, err := c.SaveQuotations(ctx, []domain.QuotationRecord{existing, newer, foreign})

	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.Len(t, c.Records(), 2)
}

func TestSaveQuotations_RejectsConflictingRate(t *testing.T) {
	ctx := context.Background()
	c, err := catalogfile.New(catalogfile.Document{Quotations: []dto.QuotationRequest{validQuotation()}})
	require.NoError(t, err)

	existing := c.Records()[0]
	newer := existing
	newer.ValidFrom = existing.ValidFrom.Add(24 * time.Hour)
	changed := existing
	changed.RateValue = existing.RateValue.Add(decimal.RequireFromString("0.01"))

	inserted, err := c.SaveQuotations(ctx, []domain.QuotationRecord{newer, changed})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Zero(t, inserted)
	assert.Len(t, c.Records(), 1)
}

func TestSaveQuotations_RejectsConflictWithinCall(t *testing.T) {
	ctx := context.Background()
	c, err := catalogfile.New(catalogfile.Document{Quotations: []dto.QuotationRequest{validQuotation()}})
	require.NoError(t, err)

	newer := c.Records()[0]
	newer.ValidFrom = newer.ValidFrom.Add(24 * time.Hour)
	repeat := newer
	flipped := newer
	flipped.IsIndirect = !newer.IsIndirect

	inserted, err := c.SaveQuotations(ctx, []domain.QuotationRecord{newer, repeat})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	_, err = c.SaveQuotations(ctx, []domain.QuotationRecord{flipped})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Len(t, c.Records(), 2)
}
