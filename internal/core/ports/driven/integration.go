package driven

import (
	"context"
	"net/url"

	"github.com/forgepoint/hublink/internal/core/domain"
)

// OAuthFlow implements the authorization-code handshake for one vendor.
// Implementations own state generation/validation and the token exchange.
type OAuthFlow interface {
	// Authorize generates the anti-forgery state, caches it, and returns
	// the vendor authorization URL for the client to redirect to.
	Authorize(ctx context.Context, userID, orgID string) (string, error)

	// Callback validates the redirect query, exchanges the code for a
	// token, caches the credential blob, and returns the confirmation page
	// HTML to render.
	Callback(ctx context.Context, query url.Values) (string, error)

	// Credentials returns the cached credential blob for org/user and
	// deletes it (one-time retrieval).
	Credentials(ctx context.Context, userID, orgID string) (domain.Credentials, error)
}

// ObjectClient fetches raw vendor records. The caller supplies the bearer
// token; the client owns endpoint shapes and property/association tables.
type ObjectClient interface {
	// FetchObjects issues a collection GET for the vendor object type.
	// A non-200 vendor response degrades to an empty result, not an error.
	FetchObjects(ctx context.Context, objectType, accessToken string, limit int) ([]domain.RawObject, error)

	// SearchObjects issues a search POST. A non-200 vendor response is an
	// UpstreamError carrying the vendor status and message.
	SearchObjects(ctx context.Context, objectType, accessToken, query string) ([]domain.RawObject, error)
}
