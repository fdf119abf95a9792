package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_conversion_engine/internal/dto"
	"github.com/SscSPs/fx_conversion_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// conversionHandler handles HTTP requests for amount conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to conversions.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", h.convert)
		conversions.POST("/batch", h.convertBatch)
	}
}

// convert resolves the applicable quotation and converts one amount.
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "InvalidParameters"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query, err := req.ToConversionQuery()
	if err != nil {
		respondError(c, err, "Invalid conversion request")
		return
	}
	override, err := req.Override.ToDataSource()
	if err != nil {
		respondError(c, err, "Invalid data source override")
		return
	}

	outcome, err := h.conversionService.Convert(c.Request.Context(), tenantID, query, override)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(query, outcome))
}

// convertBatch converts every item against one catalog snapshot. Item failures are
// reported per item with a 200 response.
func (h *conversionHandler) convertBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "InvalidParameters"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	override, err := req.Override.ToDataSource()
	if err != nil {
		respondError(c, err, "Invalid data source override")
		return
	}

	results, queries, positions := validateBatchItems(req.Items)
	if len(queries) > 0 {
		converted, err := h.conversionService.ConvertBatch(c.Request.Context(), tenantID, queries, override)
		if err != nil {
			respondError(c, err, "Failed to convert batch")
			return
		}
		for i, r := range converted {
			results[positions[i]] = r
		}
	}

	c.JSON(http.StatusOK, dto.ToBatchConversionResponse(results))
}

// validateBatchItems validates every item on its own. Invalid items get an
// InvalidParameters result in place; the valid ones are returned as queries together
// with their position in items.
func validateBatchItems(items []dto.ConversionItem) ([]domain.ConversionResult, []domain.ConversionQuery, []int) {
	results := make([]domain.ConversionResult, len(items))
	queries := make([]domain.ConversionQuery, 0, len(items))
	positions := make([]int, 0, len(items))
	for i, item := range items {
		if err := binding.Validator.ValidateStruct(item); err != nil {
			results[i] = domain.ConversionResult{Err: fmt.Errorf("%w: item %d: %s", apperrors.ErrInvalidParameters, i, err)}
			continue
		}
		q, err := item.ToConversionQuery()
		if err != nil {
			results[i] = domain.ConversionResult{Err: fmt.Errorf("item %d: %w", i, err)}
			continue
		}
		queries = append(queries, q)
		positions = append(positions, i)
	}
	return results, queries, positions
}

// respondError writes err with the status and failure code it maps to.
func respondError(c *gin.Context, err error, message string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, slog.String("error", err.Error()))
	} else {
		logger.Warn(message, slog.String("error", err.Error()), slog.String("code", apperrors.FailureKind(err)))
	}
	c.JSON(status, dto.NewErrorResponse(err, message))
}
