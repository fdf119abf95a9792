package models

// TenantSettings stores the default data source of a tenant. Both source columns are NULL
// when the tenant has not chosen one.
type TenantSettings struct {
	TenantID            string  `db:"tenant_id"`
	DefaultProviderCode *string `db:"default_provider_code"`
	DefaultDataSourceID *string `db:"default_data_source_id"`
	AuditFields
}
