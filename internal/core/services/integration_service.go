// Package services wires the core flow together: OAuth handshake, object
// fetch, normalisation and the integration registry.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/forgepoint/hublink/internal/connectors/hubspot"
	"github.com/forgepoint/hublink/internal/core/domain"
	"github.com/forgepoint/hublink/internal/core/ports/driven"
	"github.com/forgepoint/hublink/internal/core/ports/driving"
	"github.com/forgepoint/hublink/internal/logger"
	hubspotnorm "github.com/forgepoint/hublink/internal/normalisers/hubspot"
)

// Ensure IntegrationService implements the interface.
var _ driving.IntegrationService = (*IntegrationService)(nil)

// aggregateOrder is the fixed fetch order for the aggregate call.
var aggregateOrder = []string{
	hubspot.CollectionContacts,
	hubspot.CollectionDeals,
	hubspot.CollectionCompanies,
}

// IntegrationService orchestrates the HubSpot integration: authorize,
// callback, credential pickup, and the fetch/normalise pipeline.
type IntegrationService struct {
	flow       driven.OAuthFlow
	client     driven.ObjectClient
	normaliser *hubspotnorm.Normaliser
	registry   *Registry
}

// NewIntegrationService creates the service from its collaborators.
func NewIntegrationService(
	flow driven.OAuthFlow,
	client driven.ObjectClient,
	normaliser *hubspotnorm.Normaliser,
	registry *Registry,
) *IntegrationService {
	return &IntegrationService{
		flow:       flow,
		client:     client,
		normaliser: normaliser,
		registry:   registry,
	}
}

// Authorize starts the OAuth flow.
func (s *IntegrationService) Authorize(ctx context.Context, userID, orgID string) (string, error) {
	return s.flow.Authorize(ctx, userID, orgID)
}

// Callback completes the OAuth flow.
func (s *IntegrationService) Callback(ctx context.Context, query url.Values) (string, error) {
	return s.flow.Callback(ctx, query)
}

// Credentials returns the one-time cached credential blob.
func (s *IntegrationService) Credentials(ctx context.Context, userID, orgID string) (domain.Credentials, error) {
	return s.flow.Credentials(ctx, userID, orgID)
}

// Items fetches contacts, then deals, then companies, and maps each record
// to a canonical item. Records that fail to map become degraded placeholders
// so the batch size is preserved.
func (s *IntegrationService) Items(ctx context.Context, credentialsJSON string) ([]domain.IntegrationItem, error) {
	creds, err := domain.ParseCredentials([]byte(credentialsJSON))
	if err != nil {
		return nil, err
	}

	var items []domain.IntegrationItem
	for _, collection := range aggregateOrder {
		raws, err := s.client.FetchObjects(ctx, collection, creds.AccessToken, hubspot.DefaultPageLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch hubspot items: %v", domain.ErrInternal, err)
		}

		objectType := hubspotnorm.TypeFor(collection)
		for i := range raws {
			res := s.normaliser.NormaliseObject(&raws[i], objectType)
			if res.Degraded {
				logger.Warn("degraded %s record %s: %v", collection, raws[i].ID, res.Err)
			}
			items = append(items, res.Item)
		}
	}

	logger.Info("fetched %d hubspot items", len(items))
	return items, nil
}

// Search queries one object type and maps the results. Records that fail to
// map are logged and skipped; the rest of the batch is returned.
func (s *IntegrationService) Search(ctx context.Context, credentialsJSON, query, objectType string) ([]domain.IntegrationItem, error) {
	if objectType == "" {
		objectType = hubspot.CollectionContacts
	}

	creds, err := domain.ParseCredentials([]byte(credentialsJSON))
	if err != nil {
		return nil, err
	}

	raws, err := s.client.SearchObjects(ctx, objectType, creds.AccessToken, query)
	if err != nil {
		return nil, err
	}

	canonicalType := hubspotnorm.TypeFor(objectType)
	items := make([]domain.IntegrationItem, 0, len(raws))
	for i := range raws {
		res := s.normaliser.NormaliseObject(&raws[i], canonicalType)
		if res.Degraded {
			logger.Warn("skipping unmappable %s record %s: %v", objectType, raws[i].ID, res.Err)
			continue
		}
		items = append(items, res.Item)
	}

	logger.Debug("search for %q returned %d items", query, len(items))
	return items, nil
}

// Summary returns the integration's static capability metadata.
func (s *IntegrationService) Summary() domain.IntegrationType {
	return s.registry.HubSpot()
}
