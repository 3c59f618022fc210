package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/adapter/http/mapper"
	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
	"trackr/pkg/apierrors"
)

type ParticipantHandler struct {
	members ports.ParticipantService
}

func NewParticipantHandler(members ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{members: members}
}

func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	projectID := projectIDFrom(c)
	participants, err := h.members.ListParticipants(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListParticipants, "failed to list participants",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToParticipantItems(participants))
}

func (h *ParticipantHandler) AddParticipant(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)

	var req dto.ParticipantRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	participant, err := h.members.AddParticipant(c.Request.Context(), projectID, actorID, req.UserID, domain.Role(req.Role))
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateParticipants, "failed to add participant",
			zap.String("project_id", projectID), zap.String("user_id", req.UserID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToParticipantRowItem(participant))
}

func (h *ParticipantHandler) UpdateParticipantRole(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)

	var req dto.ParticipantRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	participant, err := h.members.UpdateParticipantRole(c.Request.Context(), projectID, actorID, req.UserID, domain.Role(req.Role))
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateParticipants, "failed to update participant role",
			zap.String("project_id", projectID), zap.String("user_id", req.UserID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToParticipantRowItem(participant))
}

func (h *ParticipantHandler) RemoveParticipant(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)

	var req dto.RemoveParticipantRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	if err := h.members.RemoveParticipant(c.Request.Context(), projectID, actorID, req.UserID); err != nil {
		respondError(c, err, apierrors.MsgFailUpdateParticipants, "failed to remove participant",
			zap.String("project_id", projectID), zap.String("user_id", req.UserID))
		return
	}

	c.Status(http.StatusNoContent)
}
