package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trackr/internal/adapter/auth"
	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
	"trackr/pkg/apierrors"
)

const principalKey = "principal"

// AuthMiddleware requires a valid bearer token and stores the caller in the
// gin context.
func AuthMiddleware(resolver ports.PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		principal, err := resolver.Resolve(token)
		if err != nil {
			zap.L().Debug("rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidToken, lang),
			)
			return
		}
		if principal.Verify == domain.Banned {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
			)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}

// SetPrincipal is used by handler tests to bypass token parsing.
func SetPrincipal(principal domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, principal)
		c.Next()
	}
}
