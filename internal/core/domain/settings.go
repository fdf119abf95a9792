package domain

// EffectiveSettings decides which quotations are eligible for one conversion call.
// It is one of TenantDefaultSettings, OverrideSettings or UnconfiguredSettings and is
// chosen by the caller; nothing downstream merges the variants.
type EffectiveSettings interface {
	// Admits reports whether a quotation from the given source is eligible.
	Admits(source DataSource) bool
	// Restricted reports whether eligibility is bound to a single data source.
	Restricted() bool

	effectiveSettings()
}

// TenantDefaultSettings binds eligibility to the tenant's configured data source.
type TenantDefaultSettings struct {
	DataSource
}

// OverrideSettings binds eligibility to a data source supplied for a single request.
type OverrideSettings struct {
	DataSource
}

// UnconfiguredSettings admits every data source. Quotations from different sources
// competing for the same pair are then reported as ambiguous.
type UnconfiguredSettings struct{}

func (s TenantDefaultSettings) Admits(source DataSource) bool { return s.DataSource == source }
func (s TenantDefaultSettings) Restricted() bool              { return true }
func (TenantDefaultSettings) effectiveSettings()              {}

func (s OverrideSettings) Admits(source DataSource) bool { return s.DataSource == source }
func (s OverrideSettings) Restricted() bool              { return true }
func (OverrideSettings) effectiveSettings()              {}

func (UnconfiguredSettings) Admits(DataSource) bool { return true }
func (UnconfiguredSettings) Restricted() bool       { return false }
func (UnconfiguredSettings) effectiveSettings()     {}

// TenantSettings is the stored per-tenant configuration.
type TenantSettings struct {
	TenantID TenantID
	// Default is nil when the tenant has not configured a data source.
	Default *DataSource
	AuditFields
}

// SelectSettings returns OverrideSettings when override is given, otherwise the tenant's
// default, otherwise UnconfiguredSettings.
func SelectSettings(tenant *TenantSettings, override *DataSource) EffectiveSettings {
	switch {
	case override != nil:
		return OverrideSettings{DataSource: *override}
	case tenant != nil && tenant.Default != nil:
		return TenantDefaultSettings{DataSource: *tenant.Default}
	default:
		return UnconfiguredSettings{}
	}
}
