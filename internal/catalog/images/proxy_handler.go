package images

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var proxyClient = &http.Client{Timeout: 10 * time.Second}

// ProxyHandler streams an allowlisted CDN image through the API so the
// storefront can load covers rewritten by ResolveCoverImage without
// cross-origin trouble.
type ProxyHandler struct{}

func NewProxyHandler() *ProxyHandler {
	return &ProxyHandler{}
}

// GET /images/proxy?url=
func (h *ProxyHandler) Proxy(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "url is required", nil)
		return
	}

	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "url is not a valid absolute URL", nil)
		return
	}

	if _, allowed := proxiedHosts[target.Host]; !allowed {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "host is not allowed", nil)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "failed to build upstream request", nil)
		return
	}

	resp, err := proxyClient.Do(req)
	if err != nil {
		log.Printf("[IMAGES] proxy fetch failed for %s: %v", target.Host, err)
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "failed to fetch image", nil)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "upstream returned an error", nil)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
}

func RegisterRoutes(r *gin.RouterGroup, handler *ProxyHandler) {
	imgs := r.Group("/images")
	{
		imgs.GET("/proxy", handler.Proxy)
	}
}
