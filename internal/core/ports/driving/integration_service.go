// Package driving defines the driving-side ports: the operations the outer
// surfaces (HTTP, CLI) invoke on the core.
package driving

import (
	"context"
	"net/url"

	"github.com/forgepoint/hublink/internal/core/domain"
)

// IntegrationService exposes the full integration flow for one vendor:
// authorize -> external redirect -> callback -> credential pickup ->
// item fetch/search.
type IntegrationService interface {
	// Authorize starts the OAuth flow and returns the vendor URL to
	// redirect the user to.
	Authorize(ctx context.Context, userID, orgID string) (string, error)

	// Callback completes the OAuth flow from the redirect query parameters
	// and returns the confirmation page HTML.
	Callback(ctx context.Context, query url.Values) (string, error)

	// Credentials returns the one-time cached credential blob for org/user.
	Credentials(ctx context.Context, userID, orgID string) (domain.Credentials, error)

	// Items fetches all supported vendor objects with the given credential
	// blob and returns them as canonical items. Per-record mapping failures
	// yield degraded placeholder items rather than errors.
	Items(ctx context.Context, credentialsJSON string) ([]domain.IntegrationItem, error)

	// Search queries one vendor object type and returns canonical items.
	// Records that fail to map are logged and skipped.
	Search(ctx context.Context, credentialsJSON, query, objectType string) ([]domain.IntegrationItem, error)

	// Summary returns the integration's static capability metadata.
	Summary() domain.IntegrationType
}
