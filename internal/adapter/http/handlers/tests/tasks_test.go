package tests

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/adapter/http/handlers"
	"trackr/internal/core/domain"
	"trackr/pkg/translator"
)

const tasksPath = "/api/projects/" + projectID + "/tasks"

func newTaskRouter(service *taskServiceMock, authenticated bool) *gin.Engine {
	handler := handlers.NewTaskHandler(service)
	router := newRouter(authenticated)
	router.POST("/api/projects/:projectId/tasks", handler.CreateTask)
	router.GET("/api/projects/:projectId/tasks", handler.ListTasks)
	router.GET("/api/projects/:projectId/tasks/:taskId", handler.GetTask)
	router.PATCH("/api/projects/:projectId/tasks/:taskId", handler.UpdateTask)
	router.DELETE("/api/projects/:projectId/tasks/:taskId", handler.DeleteTask)
	router.POST("/api/projects/:projectId/tasks/:taskId/subtasks", handler.CreateSubTask)
	router.GET("/api/projects/:projectId/tasks/:taskId/subtasks", handler.ListSubTasks)
	return router
}

func sampleTask() domain.Task {
	createdAt := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	dueDate := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	assignee := otherID
	return domain.Task{
		ID:          taskID,
		ProjectID:   projectID,
		Title:       "Ship endpoint",
		Description: "Wire the handler",
		CreatorID:   userID,
		AssigneeID:  &assignee,
		Type:        domain.TaskTypeTask,
		Ancestors:   []string{},
		Status:      domain.TaskStatusTodo,
		Priority:    domain.TaskPriorityHigh,
		Progress:    25,
		DueDate:     &dueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateRootTask", mock.Anything, mock.MatchedBy(func(in domain.CreateTaskInput) bool {
		return in.ProjectID == projectID &&
			in.CreatorID == userID &&
			in.Title == "Ship endpoint" &&
			in.Type == domain.TaskTypeTask &&
			in.ParentTaskID == nil &&
			in.Priority != nil && *in.Priority == domain.TaskPriorityHigh &&
			in.AssigneeID != nil && *in.AssigneeID == otherID &&
			in.DueDate != nil && in.DueDate.Format("2006-01-02") == "2026-11-01"
	})).Return(sampleTask(), nil).Once()

	body := `{"title":"  Ship endpoint  ","priority":"High","assignee_id":"` + otherID + `","due_date":"2026-11-01"}`
	rec := serve(newTaskRouter(serviceMock, true), http.MethodPost, tasksPath, body, translator.LanguageEn)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode[dto.TaskItem](t, rec)
	require.Equal(t, taskID, got.ID)
	require.Equal(t, "Task", got.Type)
	require.Equal(t, "To Do", got.Status)
	require.Equal(t, "High", got.Priority)
	require.Equal(t, 25, got.Progress)
	require.Equal(t, "2026-11-01", *got.DueDate)
	require.Equal(t, "2026-10-01T09:30:00Z", got.CreatedAt)
	require.Equal(t, []string{}, got.Ancestors)
	require.Nil(t, got.ParentTaskID)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"title":`},
		{name: "missing title", body: `{"description":"no title"}`},
		{name: "blank title", body: `{"title":"   "}`},
		{name: "unknown type", body: `{"title":"x","type":"Chore"}`},
		{name: "progress above range", body: `{"title":"x","progress":101}`},
		{name: "bad priority", body: `{"title":"x","priority":"Critical"}`},
		{name: "bad assignee", body: `{"title":"x","assignee_id":"bob"}`},
		{name: "bad due date", body: `{"title":"x","due_date":"01/11/2026"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)

			rec := serve(newTaskRouter(serviceMock, true), http.MethodPost, tasksPath, tt.body, translator.LanguageEn)

			requireError(t, rec, http.StatusBadRequest, "Invalid payload")
			serviceMock.AssertNotCalled(t, "CreateRootTask", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_Unauthenticated(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := serve(newTaskRouter(serviceMock, false), http.MethodPost, tasksPath, `{"title":"x"}`, translator.LanguageEn)

	requireError(t, rec, http.StatusUnauthorized, "Authentication required")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		lang    string
		status  int
		message string
	}{
		{name: "assignee", err: domain.ErrAssigneeNotMember, lang: translator.LanguageEn, status: http.StatusBadRequest, message: "Assignee must be an active participant of the project"},
		{name: "root subtask", err: domain.ErrRootTaskType, lang: translator.LanguageEn, status: http.StatusBadRequest, message: "A root task cannot be of type Subtask"},
		{name: "not participant french", err: domain.ErrNotParticipant, lang: "fr-FR,fr;q=0.9", status: http.StatusForbidden, message: "Vous n'êtes pas participant de ce projet"},
		{name: "unexpected", err: errors.New("db is down"), lang: translator.LanguageEn, status: http.StatusInternalServerError, message: "Failed to create task"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("CreateRootTask", mock.Anything, mock.Anything).Return(domain.Task{}, tt.err).Once()

			rec := serve(newTaskRouter(serviceMock, true), http.MethodPost, tasksPath, `{"title":"x"}`, tt.lang)

			requireError(t, rec, tt.status, tt.message)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_CreateSubTask_Success(t *testing.T) {
	subtask := sampleTask()
	subtask.Type = domain.TaskTypeSubtask
	subtask.ParentTaskID = ptr(parentID)
	subtask.Ancestors = []string{parentID}
	subtask.Level = 1

	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateSubTask", mock.Anything, mock.MatchedBy(func(in domain.CreateTaskInput) bool {
		return in.ParentTaskID != nil && *in.ParentTaskID == parentID &&
			in.Type == domain.TaskTypeSubtask &&
			in.Progress != nil && *in.Progress == 40
	})).Return(subtask, nil).Once()

	target := tasksPath + "/" + parentID + "/subtasks"
	rec := serve(newTaskRouter(serviceMock, true), http.MethodPost, target, `{"title":"Child","type":"Bug","progress":40}`, translator.LanguageEn)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode[dto.TaskItem](t, rec)
	require.Equal(t, "Subtask", got.Type)
	require.Equal(t, parentID, *got.ParentTaskID)
	require.Equal(t, []string{parentID}, got.Ancestors)
	require.Equal(t, 1, got.Level)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateSubTask_Errors(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateSubTask", mock.Anything, mock.Anything).Return(domain.Task{}, domain.ErrParentTaskIsSubtask).Once()
	router := newTaskRouter(serviceMock, true)

	rec := serve(router, http.MethodPost, tasksPath+"/not-a-uuid/subtasks", `{"title":"x"}`, translator.LanguageEn)
	requireError(t, rec, http.StatusBadRequest, "Invalid task id")

	rec = serve(router, http.MethodPost, tasksPath+"/"+parentID+"/subtasks", `{"title":"x"}`, translator.LanguageEn)
	requireError(t, rec, http.StatusBadRequest, "A subtask cannot have subtasks")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	child := sampleTask()
	child.ParentTaskID = ptr(parentID)
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTasksByProject", mock.Anything, projectID).Return([]domain.TaskDetail{
		{
			Task:     child,
			Creator:  &domain.UserSummary{ID: userID, Username: "alice", Email: "alice@example.com"},
			Assignee: &domain.UserSummary{ID: otherID, Username: "bob", Email: "bob@example.com"},
			Parent:   &domain.TaskSummary{ID: parentID, Title: "Parent", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityLow},
		},
	}, nil).Once()

	rec := serve(newTaskRouter(serviceMock, true), http.MethodGet, tasksPath, "", translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]dto.TaskItem](t, rec)
	require.Len(t, got, 1)
	require.Equal(t, "alice", got[0].Creator.Username)
	require.Equal(t, "bob", got[0].Assignee.Username)
	require.Equal(t, parentID, got[0].Parent.ID)
	require.Equal(t, "In Progress", got[0].Parent.Status)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTasksByProject", mock.Anything, projectID).Return(nil, errors.New("db is down")).Once()

	rec := serve(newTaskRouter(serviceMock, true), http.MethodGet, tasksPath, "", translator.LanguageEn)

	requireError(t, rec, http.StatusInternalServerError, "Failed to list tasks")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_Success(t *testing.T) {
	subtask := sampleTask()
	subtask.ID = otherID
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTaskByID", mock.Anything, projectID, taskID).Return(domain.TaskDetail{
		Task:     sampleTask(),
		Lineage:  []domain.TaskSummary{{ID: parentID, Title: "Root"}},
		Subtasks: []domain.Task{subtask},
	}, nil).Once()

	rec := serve(newTaskRouter(serviceMock, true), http.MethodGet, tasksPath+"/"+taskID, "", translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.TaskDetailItem](t, rec)
	require.Equal(t, taskID, got.ID)
	require.Len(t, got.Lineage, 1)
	require.Equal(t, "Root", got.Lineage[0].Title)
	require.Len(t, got.Subtasks, 1)
	require.Equal(t, otherID, got.Subtasks[0].ID)
	require.Nil(t, got.Creator)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	tests := []struct {
		lang    string
		message string
	}{
		{lang: translator.LanguageEn, message: "Task not found"},
		{lang: translator.LanguageFr, message: "Tâche introuvable"},
		{lang: "de-DE", message: "Task not found"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("GetTaskByID", mock.Anything, projectID, taskID).Return(domain.TaskDetail{}, domain.ErrTaskNotFound).Once()

			rec := serve(newTaskRouter(serviceMock, true), http.MethodGet, tasksPath+"/"+taskID, "", tt.lang)

			requireError(t, rec, http.StatusNotFound, tt.message)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_ListSubTasks(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetSubTasks", mock.Anything, projectID, taskID).Return([]domain.Task{}, nil).Once()
	router := newTaskRouter(serviceMock, true)

	rec := serve(router, http.MethodGet, tasksPath+"/"+taskID+"/subtasks", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(router, http.MethodGet, tasksPath+"/1/subtasks", "", translator.LanguageEn)
	requireError(t, rec, http.StatusBadRequest, "Invalid task id")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_Success(t *testing.T) {
	updated := sampleTask()
	updated.Progress = 80
	updated.AssigneeID = nil
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTaskByID", mock.Anything, projectID, taskID, userID, mock.MatchedBy(func(in domain.UpdateTaskInput) bool {
		return in.Progress != nil && *in.Progress == 80 &&
			in.AssigneeSet && in.AssigneeID == nil &&
			!in.DueDateSet &&
			in.Title == nil &&
			in.CreatorID == nil
	})).Return(domain.TaskDetail{Task: updated}, nil).Once()

	rec := serve(newTaskRouter(serviceMock, true), http.MethodPatch, tasksPath+"/"+taskID, `{"progress":80,"assignee_id":null}`, translator.LanguageEn)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.TaskDetailItem](t, rec)
	require.Equal(t, 80, got.Progress)
	require.Nil(t, got.AssigneeID)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_CreatorIsForwarded(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTaskByID", mock.Anything, projectID, taskID, userID, mock.MatchedBy(func(in domain.UpdateTaskInput) bool {
		return in.CreatorID != nil && *in.CreatorID == otherID
	})).Return(domain.TaskDetail{}, domain.ErrCreatorImmutable).Once()

	rec := serve(newTaskRouter(serviceMock, true), http.MethodPatch, tasksPath+"/"+taskID, `{"creator":"`+otherID+`"}`, translator.LanguageEn)

	requireError(t, rec, http.StatusBadRequest, "The task creator cannot be changed")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "null title", body: `{"title":null}`},
		{name: "null progress", body: `{"progress":null}`},
		{name: "bad status", body: `{"status":"Done"}`},
		{name: "not an object", body: `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)

			rec := serve(newTaskRouter(serviceMock, true), http.MethodPatch, tasksPath+"/"+taskID, tt.body, translator.LanguageEn)

			requireError(t, rec, http.StatusBadRequest, "Invalid payload")
			serviceMock.AssertNotCalled(t, "UpdateTaskByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_UpdateTask_ProgressDerived(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTaskByID", mock.Anything, projectID, taskID, userID, mock.Anything).Return(domain.TaskDetail{}, domain.ErrProgressDerived).Once()

	rec := serve(newTaskRouter(serviceMock, true), http.MethodPatch, tasksPath+"/"+taskID, `{"progress":10}`, translator.LanguageEn)

	requireError(t, rec, http.StatusBadRequest, "Progress of a task with subtasks is computed from its subtasks")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTaskByID", mock.Anything, projectID, taskID, userID).Return(domain.DeleteTaskResult{TaskID: taskID}, nil).Once()
	serviceMock.On("DeleteTaskByID", mock.Anything, projectID, otherID, userID).Return(domain.DeleteTaskResult{}, domain.ErrInsufficientRole).Once()
	router := newTaskRouter(serviceMock, true)

	rec := serve(router, http.MethodDelete, tasksPath+"/"+taskID, "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"task_id":"`+taskID+`"}`, rec.Body.String())

	rec = serve(router, http.MethodDelete, tasksPath+"/"+otherID, "", translator.LanguageEn)
	requireError(t, rec, http.StatusForbidden, "You do not have permission to perform this action")
	serviceMock.AssertExpectations(t)
}

func ptr[T any](v T) *T {
	return &v
}
