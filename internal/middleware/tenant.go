package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/requestdata"
)

// TenantMiddleware identifies the calling tenant from a bearer token. It
// validates and extracts claims only; issuing, refreshing and revoking
// tokens is out of scope for this service.
type TenantMiddleware struct {
	log    *logger.Logger
	secret []byte
}

func NewTenantMiddleware(log *logger.Logger, secret string) *TenantMiddleware {
	middlewareLog := log.With("middleware", "TenantMiddleware")
	return &TenantMiddleware{log: middlewareLog, secret: []byte(secret)}
}

func (tm *TenantMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		rd, err := tm.parseClaims(tokenString)
		if err != nil {
			tm.log.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (tm *TenantMiddleware) parseClaims(tokenString string) (*requestdata.RequestData, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	tenantRaw, _ := claims["tenant_id"].(string)
	tenantID, err := uuid.Parse(tenantRaw)
	if err != nil {
		return nil, fmt.Errorf("token missing tenant_id claim")
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		TenantID:    tenantID,
	}
	if sub, _ := claims["sub"].(string); sub != "" {
		if userID, err := uuid.Parse(sub); err == nil {
			rd.UserID = userID
		}
	}
	return rd, nil
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return c.Query("token")
}
