package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"trackr/internal/adapter/http/mapper"
	"trackr/internal/adapter/http/middleware"
	"trackr/pkg/apierrors"
)

const taskIDParam = "taskId"

// respondError writes the translated envelope for err. Internal failures are
// logged with the given fields and reported under fallbackKey.
func respondError(c *gin.Context, err error, fallbackKey string, logMsg string, fields ...zap.Field) {
	status, key := mapper.ToErrorResponse(err, fallbackKey)
	if status == http.StatusInternalServerError {
		fields = append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		zap.L().Error(logMsg, fields...)
	}
	writeError(c, status, key)
}

func writeError(c *gin.Context, status int, key string) {
	c.JSON(status, apierrors.CreateError(status, key, middleware.GetLang(c)))
}

// callerID returns the authenticated user id, or writes 401.
func callerID(c *gin.Context) (string, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.UserID == "" {
		writeError(c, http.StatusUnauthorized, apierrors.MsgUnauthorized)
		return "", false
	}
	return principal.UserID, true
}

func projectIDFrom(c *gin.Context) string {
	return c.Param(middleware.ProjectIDParam)
}

// taskIDFrom returns the task id path parameter, or writes 400.
func taskIDFrom(c *gin.Context) (string, bool) {
	taskID := c.Param(taskIDParam)
	if _, err := uuid.Parse(taskID); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return taskID, true
}

// bindJSON validates the body into req and also returns it as a raw field map,
// so partial updates can tell null apart from absence.
func bindJSON(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	return raw, true
}
