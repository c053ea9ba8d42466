package handlers

import (
	"strings"

	"github.com/dstanic/folio-api/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/m1z23r/drift/pkg/drift"
)

var validate = validator.New()

// clientMeta extracts the request context recorded with audit entries.
func clientMeta(c *drift.Context) services.RequestMeta {
	ip := c.Request.RemoteAddr
	if fwd := c.Request.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			ip = strings.TrimSpace(fwd[:idx])
		} else {
			ip = strings.TrimSpace(fwd)
		}
	} else if idx := strings.LastIndexByte(ip, ':'); idx > 0 {
		ip = ip[:idx]
	}

	return services.RequestMeta{
		IPAddress: ip,
		UserAgent: c.Request.UserAgent(),
	}
}
