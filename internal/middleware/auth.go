package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Strife-cyber/agro/internal/apierror"
	"github.com/Strife-cyber/agro/internal/authz"
)

const (
	ClaimsKey = "claims"
	ActorKey  = "actor"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route and
// resolves the acting identity. The workflow core trusts this actor and
// only checks role membership via the authz capability table.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(apierror.Forbidden("authentication required")))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(apierror.Forbidden("invalid or expired token")))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil || !authz.Role(claims.Role).Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(apierror.Forbidden("malformed token")))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, authz.Actor{ID: userID, Role: authz.Role(claims.Role)})
		c.Next()
	}
}

// GetActor retrieves the resolved actor from the Gin context.
func GetActor(c *gin.Context) authz.Actor {
	actor, _ := c.MustGet(ActorKey).(authz.Actor)
	return actor
}

func errorBody(e *apierror.Error) gin.H {
	return gin.H{"code": e.Kind, "detail": e.Message}
}
