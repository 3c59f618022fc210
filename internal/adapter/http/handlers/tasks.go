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

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)

	var req dto.CreateTaskRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}
	input, err := validation.BuildCreateTaskInput(req, projectID, userID, nil)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.taskService.CreateRootTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateSubTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)
	parentID, ok := taskIDFrom(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}
	input, err := validation.BuildCreateTaskInput(req, projectID, userID, &parentID)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.taskService.CreateSubTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create subtask",
			zap.String("project_id", projectID), zap.String("parent_task_id", parentID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID := projectIDFrom(c)
	tasks, err := h.taskService.GetTasksByProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, "failed to list tasks",
			zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetailItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	projectID := projectIDFrom(c)
	taskID, ok := taskIDFrom(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(c.Request.Context(), projectID, taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, "failed to get task",
			zap.String("project_id", projectID), zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetailItem(task))
}

func (h *TaskHandler) ListSubTasks(c *gin.Context) {
	projectID := projectIDFrom(c)
	taskID, ok := taskIDFrom(c)
	if !ok {
		return
	}

	subtasks, err := h.taskService.GetSubTasks(c.Request.Context(), projectID, taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubtasks, "failed to list subtasks",
			zap.String("project_id", projectID), zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(subtasks))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)
	taskID, ok := taskIDFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}
	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.taskService.UpdateTaskByID(c.Request.Context(), projectID, taskID, userID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, "failed to update task",
			zap.String("project_id", projectID), zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetailItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	projectID := projectIDFrom(c)
	taskID, ok := taskIDFrom(c)
	if !ok {
		return
	}

	result, err := h.taskService.DeleteTaskByID(c.Request.Context(), projectID, taskID, userID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task",
			zap.String("project_id", projectID), zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTaskResponse{TaskID: result.TaskID})
}
