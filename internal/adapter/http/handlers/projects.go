package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/adapter/http/mapper"
	"trackr/internal/adapter/http/validation"
	"trackr/internal/core/ports"
	"trackr/pkg/apierrors"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.GetAllParticipatingProjects(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListProjects, "failed to list projects",
			zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToParticipatingProjectItems(projects))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), validation.BuildCreateProjectInput(req, userID))
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateProject, "failed to create project",
			zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToProjectDetailItem(project))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID := projectIDFrom(c)
	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetProject, "failed to get project",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectDetailItem(project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)

	var req dto.UpdateProjectRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}
	input, err := validation.BuildUpdateProjectInput(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	project, err := h.projectService.UpdateProjectByID(c.Request.Context(), projectID, userID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateProject, "failed to update project",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)

	result, err := h.projectService.DeleteProjectByID(c.Request.Context(), projectID, userID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailDeleteProject, "failed to delete project",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToDeleteProjectResponse(result))
}
