package models

// RateType holds the conversion options of one rate classification for a tenant.
type RateType struct {
	TenantID          string  `db:"tenant_id"`
	RateType          string  `db:"rate_type"`
	ReferenceCurrency *string `db:"reference_currency"`
	AllowInversion    bool    `db:"allow_inversion"`
}
