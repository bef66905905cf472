package services

import (
	"fmt"
	"sort"

	"github.com/forgepoint/hublink/internal/connectors/hubspot"
	"github.com/forgepoint/hublink/internal/core/domain"
)

// Registry provides static metadata about available integrations.
type Registry struct {
	integrations map[string]domain.IntegrationType
}

// NewRegistry creates a registry with the built-in integrations registered.
func NewRegistry() *Registry {
	r := &Registry{integrations: make(map[string]domain.IntegrationType)}
	r.registerHubSpot()
	return r
}

func (r *Registry) registerHubSpot() {
	r.integrations["hubspot"] = domain.IntegrationType{
		ID:               "hubspot",
		Name:             "HubSpot CRM Integration",
		Version:          "1.0",
		SupportedObjects: []string{"Contacts", "Companies", "Deals"},
		Features: []string{
			"OAuth 2.0 Authorization Code Flow",
			"Bearer Token Authorization",
			"Association Mapping",
			"Context-Aware Record URLs",
			"Search API",
			"Degraded-Record Recovery",
		},
		Capabilities: domain.IntegrationCapabilities{
			MaxObjectsPerRequest: hubspot.DefaultPageLimit,
			PaginationSupport:    true,
			AssociationMapping:   true,
			CustomProperties:     true,
			ErrorRecovery:        true,
		},
		Endpoints: map[string]string{
			"authorize":   "/integrations/hubspot/authorize",
			"callback":    "/integrations/hubspot/oauth2callback",
			"credentials": "/integrations/hubspot/credentials",
			"load_data":   "/integrations/hubspot/load",
			"search":      "/integrations/hubspot/search",
			"summary":     "/integrations/hubspot/summary",
		},
	}
}

// List returns all registered integrations, ordered by ID.
func (r *Registry) List() []domain.IntegrationType {
	out := make([]domain.IntegrationType, 0, len(r.integrations))
	for _, it := range r.integrations {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the integration with the given ID.
func (r *Registry) Get(id string) (domain.IntegrationType, error) {
	it, ok := r.integrations[id]
	if !ok {
		return domain.IntegrationType{}, fmt.Errorf("%w: integration %q", domain.ErrNotFound, id)
	}
	return it, nil
}

// HubSpot returns the HubSpot integration metadata.
func (r *Registry) HubSpot() domain.IntegrationType {
	return r.integrations["hubspot"]
}
