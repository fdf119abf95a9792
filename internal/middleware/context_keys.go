package middleware

import (
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// tenantIDKey is the key used to store the authenticated tenant in the Gin and request contexts.
const tenantIDKey = contextKey("tenantID")

// GetTenantIDFromContext retrieves the authenticated tenant ID from the Gin context.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (domain.TenantID, bool) {
	tenantVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		// check in the request context as well
		if tenantID, ok := c.Request.Context().Value(tenantIDKey).(domain.TenantID); ok {
			return tenantID, tenantID != ""
		}
		return "", false
	}

	tenantID, ok := tenantVal.(domain.TenantID)
	if !ok {
		return "", false
	}

	return tenantID, tenantID != ""
}
