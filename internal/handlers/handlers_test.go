package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_conversion_engine/internal/dto"
	"github.com/SscSPs/fx_conversion_engine/internal/handlers"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/config"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/metrics"
	"github.com/SscSPs/fx_conversion_engine/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, tenantID domain.TenantID, query domain.ConversionQuery, override *domain.DataSource) (*domain.ConversionOutcome, error) {
	args := m.Called(ctx, tenantID, query, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionOutcome), args.Error(1)
}

func (m *MockConversionService) ConvertBatch(ctx context.Context, tenantID domain.TenantID, queries []domain.ConversionQuery, override *domain.DataSource) ([]domain.ConversionResult, error) {
	args := m.Called(ctx, tenantID, queries, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionResult), args.Error(1)
}

var _ portssvc.ConversionSvcFacade = (*MockConversionService)(nil)

// --- Mock QuotationService ---
type MockQuotationService struct {
	mock.Mock
}

func (m *MockQuotationService) ImportQuotations(ctx context.Context, tenantID domain.TenantID, records []domain.QuotationRecord) (int64, error) {
	args := m.Called(ctx, tenantID, records)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.QuotationSvcFacade = (*MockQuotationService)(nil)

const (
	testSecret = "handler-test-secret"
	testIssuer = "fx-engine-test"
	testTenant = domain.TenantID("tenant-1")
)

var validFrom = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type HandlersTestSuite struct {
	suite.Suite
	router         *gin.Engine
	conversionSvc  *MockConversionService
	quotationSvc   *MockQuotationService
	token          string
	metricRegistry *prometheus.Registry
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.conversionSvc = new(MockConversionService)
	suite.quotationSvc = new(MockQuotationService)
	suite.metricRegistry = prometheus.NewRegistry()
	metrics.NewConversionMetrics(suite.metricRegistry)

	cfg := &config.Config{
		JWTSecret: testSecret,
		JWTIssuer: testIssuer,
		RateLimit: "1000-M",
	}
	services := &portssvc.ServiceContainer{
		Conversion: suite.conversionSvc,
		Quotation:  suite.quotationSvc,
	}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services, suite.metricRegistry))

	token, err := utils.GenerateTenantJWT(testTenant, "svc", testSecret, time.Minute, testIssuer)
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func conversionBody(from, to, amount string) gin.H {
	return gin.H{
		"fromCurrency": from,
		"toCurrency":   to,
		"amount":       amount,
		"rateType":     "M",
		"asOf":         "2024-03-05T12:00:00Z",
	}
}

func queryFor(from, to, amount string) func(domain.ConversionQuery) bool {
	return func(q domain.ConversionQuery) bool {
		return q.FromCurrency == domain.CurrencyCode(from) &&
			q.ToCurrency == domain.CurrencyCode(to) &&
			q.RequestedAmount.Equal(decimal.RequireFromString(amount)) &&
			q.RateClassification == "M" &&
			q.AsOf.Equal(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC))
	}
}

func outcome(exact, rounded string, digits int32) *domain.ConversionOutcome {
	return &domain.ConversionOutcome{
		Rate: domain.ResolvedRate{
			Record: domain.QuotationRecord{
				ProviderCode:       "ECB",
				DataSourceID:       "DAILY",
				RateClassification: "M",
				RateValue:          decimal.RequireFromString("0.67"),
				FromCurrency:       "JPY",
				ToCurrency:         "USD",
				ValidFrom:          validFrom,
				FromCurrencyFactor: 100,
				ToCurrencyFactor:   1,
			},
			Direction: domain.Forward,
		},
		ExactAmount:    decimal.RequireFromString(exact),
		RoundedAmount:  decimal.RequireFromString(rounded),
		FractionDigits: digits,
	}
}

func (suite *HandlersTestSuite) TestConvert_Success() {
	suite.conversionSvc.On("Convert", mock.Anything, testTenant, mock.MatchedBy(queryFor("JPY", "USD", "1000")), (*domain.DataSource)(nil)).
		Return(outcome("6.7", "6.7", 2), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions", conversionBody("JPY", "USD", "1000"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("6.70", resp.RoundedAmount)
	suite.True(resp.ExactAmount.Equal(decimal.RequireFromString("6.7")))
	suite.Equal(int32(2), resp.FractionDigits)
	suite.Equal("forward", resp.Rate.Direction)
	suite.Equal(int64(100), resp.Rate.FromCurrencyFactor)
	suite.False(resp.Rate.Synthetic)
	suite.conversionSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestConvert_PassesOverride() {
	override := &domain.DataSource{ProviderCode: "BOE", DataSourceID: "SPOT"}
	suite.conversionSvc.On("Convert", mock.Anything, testTenant, mock.Anything, override).
		Return(outcome("108.25", "108.25", 2), nil).Once()

	body := conversionBody("EUR", "USD", "100")
	body["override"] = gin.H{"providerCode": "BOE", "dataSourceId": "SPOT"}
	w := suite.do(http.MethodPost, "/api/v1/conversions", body)

	suite.Equal(http.StatusOK, w.Code)
	suite.conversionSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestConvert_TypedFailures() {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: EUR/USD", apperrors.ErrNoMatchingRecord), http.StatusNotFound, "NoMatchingRecord"},
		{fmt.Errorf("%w: EUR/USD", apperrors.ErrMultipleRecordsFound), http.StatusConflict, "MultipleRecordsFound"},
		{fmt.Errorf("%w: EUR/USD", apperrors.ErrDuplicateRecord), http.StatusConflict, "DuplicateRecord"},
		{apperrors.ErrZeroCurrencyFactor, http.StatusUnprocessableEntity, "ZeroCurrencyFactor"},
		{apperrors.ErrEmptyQuotationCatalog, http.StatusNotFound, "EmptyQuotationCatalog"},
	}

	for _, tt := range tests {
		suite.Run(tt.wantCode, func() {
			suite.SetupTest()
			suite.conversionSvc.On("Convert", mock.Anything, testTenant, mock.Anything, (*domain.DataSource)(nil)).
				Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/conversions", conversionBody("EUR", "USD", "100"))

			suite.Equal(tt.wantStatus, w.Code)
			var resp dto.ErrorResponse
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			suite.Equal(tt.wantCode, resp.Code)
		})
	}
}

func (suite *HandlersTestSuite) TestConvert_InternalErrorHidesCause() {
	suite.conversionSvc.On("Convert", mock.Anything, testTenant, mock.Anything, (*domain.DataSource)(nil)).
		Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions", conversionBody("EUR", "USD", "100"))

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), assert.AnError.Error())
	suite.Contains(w.Body.String(), "InternalError")
}

func (suite *HandlersTestSuite) TestConvert_InvalidRequest() {
	missingAmount := conversionBody("EUR", "USD", "1")
	delete(missingAmount, "amount")
	missingRateType := conversionBody("EUR", "USD", "1")
	missingRateType["rateType"] = ""

	for name, body := range map[string]gin.H{
		"lower case currency": conversionBody("eur", "USD", "1"),
		"unknown currency":    conversionBody("EUR", "XYZ", "1"),
		"missing amount":      missingAmount,
		"missing rate type":   missingRateType,
	} {
		w := suite.do(http.MethodPost, "/api/v1/conversions", body)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.conversionSvc.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestConvert_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversions", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestConvertBatch_ReportsPerItem() {
	results := []domain.ConversionResult{
		{Query: domain.ConversionQuery{FromCurrency: "JPY", ToCurrency: "USD", RequestedAmount: decimal.NewFromInt(1000)}, Outcome: outcome("6.7", "6.7", 2)},
		{Query: domain.ConversionQuery{FromCurrency: "EUR", ToCurrency: "CHF"}, Err: fmt.Errorf("%w: EUR/CHF", apperrors.ErrNoMatchingRecord)},
	}
	suite.conversionSvc.On("ConvertBatch", mock.Anything, testTenant, mock.MatchedBy(func(qs []domain.ConversionQuery) bool {
		return len(qs) == 2 && qs[0].FromCurrency == "JPY" && qs[1].ToCurrency == "CHF"
	}), (*domain.DataSource)(nil)).Return(results, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions/batch", gin.H{
		"items": []gin.H{conversionBody("JPY", "USD", "1000"), conversionBody("EUR", "CHF", "5")},
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Results, 2)
	suite.Equal(1, resp.Succeeded)
	suite.Equal(1, resp.Failed)
	suite.Require().NotNil(resp.Results[0].Result)
	suite.Equal("6.70", resp.Results[0].Result.RoundedAmount)
	suite.Require().NotNil(resp.Results[1].Error)
	suite.Equal("NoMatchingRecord", resp.Results[1].Error.Code)
	suite.Equal(1, resp.Results[1].Index)
}

func (suite *HandlersTestSuite) TestConvertBatch_InvalidItemFailsAlone() {
	results := []domain.ConversionResult{
		{Query: domain.ConversionQuery{FromCurrency: "JPY", ToCurrency: "USD", RequestedAmount: decimal.NewFromInt(1000)}, Outcome: outcome("6.7", "6.7", 2)},
		{Query: domain.ConversionQuery{FromCurrency: "EUR", ToCurrency: "CHF", RequestedAmount: decimal.NewFromInt(5)}, Outcome: outcome("4.6", "4.6", 2)},
	}
	suite.conversionSvc.On("ConvertBatch", mock.Anything, testTenant, mock.MatchedBy(func(qs []domain.ConversionQuery) bool {
		return len(qs) == 2 && queryFor("JPY", "USD", "1000")(qs[0]) && queryFor("EUR", "CHF", "5")(qs[1])
	}), (*domain.DataSource)(nil)).Return(results, nil).Once()

	badRateType := conversionBody("EUR", "GBP", "1")
	badRateType["rateType"] = "M B"
	w := suite.do(http.MethodPost, "/api/v1/conversions/batch", gin.H{
		"items": []gin.H{
			conversionBody("JPY", "USD", "1000"),
			conversionBody("EUR", "US1", "5"),
			conversionBody("EUR", "CHF", "5"),
			badRateType,
		},
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Results, 4)
	suite.Equal(2, resp.Succeeded)
	suite.Equal(2, resp.Failed)

	suite.Require().NotNil(resp.Results[0].Result)
	suite.Equal("6.70", resp.Results[0].Result.RoundedAmount)
	suite.Require().NotNil(resp.Results[1].Error)
	suite.Equal("InvalidParameters", resp.Results[1].Error.Code)
	suite.Contains(resp.Results[1].Error.Error, "ToCurrency")
	suite.Require().NotNil(resp.Results[2].Result)
	suite.Equal("EUR", resp.Results[2].Result.FromCurrency)
	suite.Equal("4.60", resp.Results[2].Result.RoundedAmount)
	suite.Require().NotNil(resp.Results[3].Error)
	suite.Equal("InvalidParameters", resp.Results[3].Error.Code)
	suite.conversionSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestConvertBatch_AllItemsInvalid() {
	w := suite.do(http.MethodPost, "/api/v1/conversions/batch", gin.H{
		"items": []gin.H{conversionBody("EUR", "US1", "5"), conversionBody("EURO", "USD", "5")},
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(0, resp.Succeeded)
	suite.Equal(2, resp.Failed)
	for i, item := range resp.Results {
		suite.Equal(i, item.Index)
		suite.Require().NotNil(item.Error)
		suite.Equal("InvalidParameters", item.Error.Code)
	}
	suite.conversionSvc.AssertNotCalled(suite.T(), "ConvertBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestConvertBatch_EmptyItemsRejected() {
	w := suite.do(http.MethodPost, "/api/v1/conversions/batch", gin.H{"items": []gin.H{}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.conversionSvc.AssertNotCalled(suite.T(), "ConvertBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestImportQuotations() {
	suite.quotationSvc.On("ImportQuotations", mock.Anything, testTenant, mock.MatchedBy(func(recs []domain.QuotationRecord) bool {
		return len(recs) == 1 && recs[0].TenantID == testTenant &&
			recs[0].FromCurrencyFactor == 100 && recs[0].ToCurrencyFactor == 1
	})).Return(int64(1), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/quotations", gin.H{
		"quotations": []gin.H{{
			"providerCode":       "ECB",
			"dataSourceId":       "DAILY",
			"rateType":           "M",
			"rateValue":          "0.67",
			"fromCurrency":       "JPY",
			"toCurrency":         "USD",
			"validFrom":          validFrom,
			"fromCurrencyFactor": 100,
		}},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ImportQuotationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.ImportQuotationsResponse{Received: 1, Inserted: 1}, resp)
	suite.quotationSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestImportQuotations_ConflictingRate() {
	suite.quotationSvc.On("ImportQuotations", mock.Anything, testTenant, mock.Anything).
		Return(int64(0), fmt.Errorf("%w: M EUR/USD from ECB/DAILY is already stored with rate 1.08", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/quotations", gin.H{
		"quotations": []gin.H{{
			"providerCode": "ECB",
			"dataSourceId": "DAILY",
			"rateType":     "M",
			"rateValue":    "1.09",
			"fromCurrency": "EUR",
			"toCurrency":   "USD",
			"validFrom":    validFrom,
		}},
	})

	suite.Equal(http.StatusConflict, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Conflict", resp.Code)
	suite.Contains(resp.Error, "already stored")
}

func (suite *HandlersTestSuite) TestImportQuotations_SamePairRejected() {
	w := suite.do(http.MethodPost, "/api/v1/quotations", gin.H{
		"quotations": []gin.H{{
			"providerCode": "ECB",
			"dataSourceId": "DAILY",
			"rateType":     "M",
			"rateValue":    "1",
			"fromCurrency": "EUR",
			"toCurrency":   "EUR",
			"validFrom":    validFrom,
		}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.quotationSvc.AssertNotCalled(suite.T(), "ImportQuotations", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestHealthAndMetrics() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "fxengine_conversion_batch_size")
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
