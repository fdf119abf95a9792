package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fx_conversion_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_conversion_engine/internal/dto"
	"github.com/SscSPs/fx_conversion_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// quotationHandler handles HTTP requests that feed the quotation catalog.
type quotationHandler struct {
	quotationService portssvc.QuotationSvcFacade
}

func newQuotationHandler(qs portssvc.QuotationSvcFacade) *quotationHandler {
	return &quotationHandler{
		quotationService: qs,
	}
}

// registerQuotationRoutes registers routes related to quotations.
func registerQuotationRoutes(rg *gin.RouterGroup, quotationService portssvc.QuotationSvcFacade) {
	h := newQuotationHandler(quotationService)

	rg.POST("/quotations", h.importQuotations)
}

// importQuotations stores new quotations for the authenticated tenant. Quotations that
// already exist are skipped, so an import can be retried.
func (h *quotationHandler) importQuotations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportQuotationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportQuotations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "ValidationError"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := dto.ToQuotationRecords(req.Quotations, tenantID)
	if err != nil {
		respondError(c, err, "Invalid quotation")
		return
	}

	inserted, err := h.quotationService.ImportQuotations(c.Request.Context(), tenantID, records)
	if err != nil {
		respondError(c, err, "Failed to import quotations")
		return
	}

	c.JSON(http.StatusCreated, dto.ImportQuotationsResponse{Received: len(records), Inserted: inserted})
}
