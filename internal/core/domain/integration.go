package domain

// IntegrationType describes a supported integration: what it talks to, what
// it can do, and where its endpoints live. The registry serves this as the
// integration's static summary.
type IntegrationType struct {
	// ID is the unique identifier (e.g. "hubspot").
	ID string `json:"id"`
	// Name is the human-readable display name.
	Name string `json:"integration_name"`
	// Version of the integration implementation.
	Version string `json:"version"`
	// SupportedObjects lists the vendor object kinds this integration maps.
	SupportedObjects []string `json:"supported_objects"`
	// Features is descriptive capability text for display.
	Features []string `json:"features"`
	// Capabilities are the structured capability flags and limits.
	Capabilities IntegrationCapabilities `json:"capabilities"`
	// Endpoints maps logical operations to their HTTP paths.
	Endpoints map[string]string `json:"api_endpoints"`
}

// IntegrationCapabilities are the structured limits and feature flags of an
// integration.
type IntegrationCapabilities struct {
	MaxObjectsPerRequest int  `json:"max_objects_per_request"`
	PaginationSupport    bool `json:"pagination_support"`
	AssociationMapping   bool `json:"association_mapping"`
	CustomProperties     bool `json:"custom_properties"`
	PerformanceMonitor   bool `json:"performance_monitoring"`
	ErrorRecovery        bool `json:"error_recovery"`
}
