package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
	groupdomain "github.com/tanomu-app/tanomu/internal/group/domain"
)

const (
	headerMemberID = "x-member-id"
	headerDeviceID = "x-device-id"
	headerAppLang  = "x-app-lang"
)

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

func corsMiddleware(appOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := appOrigin
		switch {
		case origin == "":
			if allowed == "" {
				allowed = "*"
			}
		case appOrigin == "" || appOrigin == "*":
			allowed = origin
		case origin == appOrigin:
			allowed = origin
		}

		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, x-device-id, x-member-id, x-app-lang")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requireMember authenticates the caller against a group using the member
// and device headers. On failure it writes the error answer and returns
// false.
func (s *Server) requireMember(c *gin.Context, groupID string) (*groupdomain.Member, bool) {
	member, err := s.groupSvc.AuthenticateMember(
		c.Request.Context(),
		c.GetHeader(headerMemberID),
		groupID,
		c.GetHeader(headerDeviceID),
	)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return member, true
}

// requireDevice authenticates the caller without a group scope.
func (s *Server) requireDevice(c *gin.Context) (*groupdomain.Member, bool) {
	member, err := s.groupSvc.AuthenticateDevice(
		c.Request.Context(),
		c.GetHeader(headerMemberID),
		c.GetHeader(headerDeviceID),
	)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return member, true
}

func requestLanguage(c *gin.Context) catalogdomain.Language {
	return catalogdomain.ResolveLanguage(c.GetHeader(headerAppLang), c.GetHeader("Accept-Language"))
}

// actorIP identifies the caller for the create/join limiter. Proxy headers
// win over the socket address because the service runs behind a fronting
// proxy in production.
func actorIP(c *gin.Context) string {
	for _, header := range []string{"cf-connecting-ip", "x-forwarded-for", "x-real-ip"} {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		if first := strings.TrimSpace(strings.Split(value, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
