package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/myadmincaptiva/backend/internal/model"
)

const sessionKey = "auth_session"

// tokenVerifier - Bearer 토큰 검증 인터페이스
type tokenVerifier interface {
	ParseAccessToken(token string) (*model.Session, error)
}

// AuthMiddleware rejects the request with the same 401 body whether the header
// is missing, malformed, or carries a bad token.
func AuthMiddleware(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		session, err := verifier.ParseAccessToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func GetSession(c *gin.Context) *model.Session {
	if value, ok := c.Get(sessionKey); ok {
		if session, ok := value.(*model.Session); ok {
			return session
		}
	}
	return nil
}

// bearerToken accepts exactly "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Unauthorized"})
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
