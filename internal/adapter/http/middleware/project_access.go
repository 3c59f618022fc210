package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"trackr/internal/adapter/http/mapper"
	"trackr/internal/core/ports"
	"trackr/pkg/apierrors"
)

const ProjectIDParam = "projectId"

// ProjectAccessMiddleware lets the request through only when the caller is an
// active participant of the project named in the path.
func ProjectAccessMiddleware(members ports.ParticipantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		projectID := c.Param(ProjectIDParam)
		if _, err := uuid.Parse(projectID); err != nil {
			c.AbortWithStatusJSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgProjectNotFound, lang),
			)
			return
		}

		if _, err := members.VerifyUserProjectAccess(c.Request.Context(), projectID, principal.UserID); err != nil {
			status, key := mapper.ToErrorResponse(err, apierrors.MsgInternalError)
			if status == http.StatusInternalServerError {
				zap.L().Error("failed to verify project access",
					zap.String("project_id", projectID),
					zap.String("user_id", principal.UserID),
					zap.Error(err),
				)
			}
			c.AbortWithStatusJSON(status, apierrors.CreateError(status, key, lang))
			return
		}
		c.Next()
	}
}
