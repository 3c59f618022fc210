package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trackr/internal/adapter/http/mapper"
	"trackr/internal/core/ports"
	"trackr/pkg/apierrors"
)

type ActivityHandler struct {
	activityService ports.ActivityService
}

func NewActivityHandler(activityService ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) ListProjectActivities(c *gin.Context) {
	projectID := projectIDFrom(c)
	entries, err := h.activityService.GetProjectActivities(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListActivities, "failed to list project activities",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToActivityItems(entries))
}
