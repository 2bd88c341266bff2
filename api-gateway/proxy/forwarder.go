package proxy

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var hopByHop = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailer":             true,
	"transfer-encoding":   true,
	"upgrade":             true,
}

// Forwarder relays requests to one upstream service, keeping the request
// path so upstream routes match the public ones.
type Forwarder struct {
	name   string
	base   string
	client *http.Client
	logger *zap.Logger
}

func NewForwarder(name, base string, timeout time.Duration, log *zap.Logger) *Forwarder {
	return &Forwarder{
		name:   name,
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

func (f *Forwarder) Handle(c *gin.Context) {
	log := logger.For(c.Request.Context(), f.logger)

	targetURL := f.base + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		targetURL += "?" + c.Request.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, c.Request.Body)
	if err != nil {
		log.Error("Failed to create forward request", zap.String("upstream", f.name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}
	req.ContentLength = c.Request.ContentLength
	copyHeaders(req.Header, c.Request.Header)
	req.Header.Set("X-Forwarded-For", c.ClientIP())
	req.Header.Set("X-Forwarded-Host", c.Request.Host)
	if rid := logger.RequestID(c); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Error("Failed to forward request",
			zap.String("upstream", f.name), zap.String("url", targetURL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "service unreachable"})
		return
	}
	defer resp.Body.Close()

	out := c.Writer.Header()
	for k, v := range resp.Header {
		lower := strings.ToLower(k)
		// CORS is answered by the gateway itself.
		if strings.HasPrefix(lower, "access-control-") || hopByHop[lower] {
			continue
		}
		// Set-Cookie must stay one header per cookie.
		out[k] = append([]string(nil), v...)
	}
	c.Status(resp.StatusCode)

	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Warn("Failed to copy response body", zap.String("upstream", f.name), zap.Error(err))
	}
}

func copyHeaders(dst, src http.Header) {
	for k, v := range src {
		if hopByHop[strings.ToLower(k)] {
			continue
		}
		dst[k] = append([]string(nil), v...)
	}
}
