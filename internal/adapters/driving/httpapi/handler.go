// Package httpapi exposes the integration flow over HTTP. It is a thin gin
// layer: request parsing, error-to-status rendering and nothing else.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forgepoint/hublink/internal/core/domain"
	"github.com/forgepoint/hublink/internal/core/ports/driving"
	"github.com/forgepoint/hublink/internal/logger"
)

// Handler serves the HubSpot integration endpoints.
type Handler struct {
	service driving.IntegrationService
}

// NewHandler creates a handler backed by the given service.
func NewHandler(service driving.IntegrationService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the integration endpoints on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hs := rg.Group("/integrations/hubspot")
	hs.POST("/authorize", h.authorize)
	hs.GET("/oauth2callback", h.callback)
	hs.POST("/credentials", h.credentials)
	hs.POST("/load", h.load)
	hs.POST("/search", h.search)
	hs.POST("/summary", h.summary)
}

func (h *Handler) authorize(c *gin.Context) {
	userID := c.PostForm("user_id")
	orgID := c.PostForm("org_id")
	if userID == "" || orgID == "" {
		renderError(c, domain.ErrInvalidInput, "missing user_id or org_id")
		return
	}

	authURL, err := h.service.Authorize(c.Request.Context(), userID, orgID)
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": authURL})
}

func (h *Handler) callback(c *gin.Context) {
	page, err := h.service.Callback(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *Handler) credentials(c *gin.Context) {
	userID := c.PostForm("user_id")
	orgID := c.PostForm("org_id")
	if userID == "" || orgID == "" {
		renderError(c, domain.ErrInvalidInput, "missing user_id or org_id")
		return
	}

	creds, err := h.service.Credentials(c.Request.Context(), userID, orgID)
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, creds)
}

func (h *Handler) load(c *gin.Context) {
	credentials := c.PostForm("credentials")
	if credentials == "" {
		renderError(c, domain.ErrInvalidInput, "missing credentials")
		return
	}

	items, err := h.service.Items(c.Request.Context(), credentials)
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, itemMaps(items))
}

func (h *Handler) search(c *gin.Context) {
	credentials := c.PostForm("credentials")
	query := c.PostForm("query")
	if credentials == "" || query == "" {
		renderError(c, domain.ErrInvalidInput, "missing credentials or query")
		return
	}

	items, err := h.service.Search(c.Request.Context(), credentials, query, c.PostForm("object_type"))
	if err != nil {
		renderError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, itemMaps(items))
}

func (h *Handler) summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Summary())
}

// itemMaps serialises items to their flat mapping form.
func itemMaps(items []domain.IntegrationItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToMap())
	}
	return out
}

// renderError logs the error and writes the {"detail": ...} body with the
// status class from the domain taxonomy.
func renderError(c *gin.Context, err error, detail string) {
	if detail == "" {
		detail = err.Error()
	}
	logger.Error("%s %s failed: %s", c.Request.Method, c.FullPath(), detail)
	c.AbortWithStatusJSON(domain.StatusFor(err), gin.H{"detail": detail})
}
