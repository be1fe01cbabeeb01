package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/auth"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

const (
	GinContextKeyOwnerID    = "ownerID"
	GinContextKeySessionID  = "sessionID"
	GinContextKeySessionExp = "sessionExp"
)

// AuthMiddleware is the authorization gate in front of every mutating
// route. A request without a bearer token is rejected before any store
// or provider call; a presented token must verify AND its session must
// still be active. Downstream handlers read the verified identity from
// the context and obtain a fresh identity-scoped writer through the
// usecase's WriterFactory; nothing caller-scoped is shared between
// requests.
func AuthMiddleware(jwtSvc *auth.JWTService, sessions service.SessionStore, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			appErr := apperror.NewAuthMissing()
			c.AbortWithStatusJSON(apperror.ToHTTPStatus(appErr), gin.H{"error": appErr.Message})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		active, err := sessions.IsActive(c.Request.Context(), claims.ID)
		if err != nil {
			log.Error("Session check failed", err, zap.String("session_id", claims.ID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(GinContextKeyOwnerID, claims.OwnerID)
		c.Set(GinContextKeySessionID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(GinContextKeySessionExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// ErrorMiddleware turns errors attached by handlers into a single JSON
// response. Nothing is allowed to escape without a response body.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.Request.URL.Path))
		}

		if appErr, ok := err.(*apperror.AppError); ok {
			c.AbortWithStatusJSON(status, appErr.ToJSON())
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}

func GetSessionIDFromGinContext(c *gin.Context) (string, bool) {
	sessionID, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return "", false
	}
	id, ok := sessionID.(string)
	return id, ok
}

func GetSessionExpiryFromGinContext(c *gin.Context) (time.Time, bool) {
	exp, ok := c.Get(GinContextKeySessionExp)
	if !ok {
		return time.Time{}, false
	}
	t, ok := exp.(time.Time)
	return t, ok
}
