package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trackr/internal/adapter/http/middleware"
	"trackr/internal/core/domain"
	"trackr/pkg/apierrors"
)

const (
	projectID = "6f1c2a9e-3b7d-4c1e-9a55-1d2e3f4a5b6c"
	taskID    = "0b8d7c6e-5f4a-4b3c-8d2e-1f0a9b8c7d6e"
	parentID  = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
	userID    = "2c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f"
	otherID   = "7e6d5c4b-3a29-4817-8f6e-5d4c3b2a1908"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateRootTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateSubTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTaskByID(ctx context.Context, projectID, taskID string) (domain.TaskDetail, error) {
	args := m.Called(ctx, projectID, taskID)
	return args.Get(0).(domain.TaskDetail), args.Error(1)
}

func (m *taskServiceMock) GetTasksByProject(ctx context.Context, projectID string) ([]domain.TaskDetail, error) {
	args := m.Called(ctx, projectID)

	var tasks []domain.TaskDetail
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.TaskDetail)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) GetSubTasks(ctx context.Context, projectID, taskID string) ([]domain.Task, error) {
	args := m.Called(ctx, projectID, taskID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTaskByID(ctx context.Context, projectID, taskID, updaterID string, input domain.UpdateTaskInput) (domain.TaskDetail, error) {
	args := m.Called(ctx, projectID, taskID, updaterID, input)
	return args.Get(0).(domain.TaskDetail), args.Error(1)
}

func (m *taskServiceMock) DeleteTaskByID(ctx context.Context, projectID, taskID, actorID string) (domain.DeleteTaskResult, error) {
	args := m.Called(ctx, projectID, taskID, actorID)
	return args.Get(0).(domain.DeleteTaskResult), args.Error(1)
}

type projectServiceMock struct {
	mock.Mock
}

func (m *projectServiceMock) CreateProject(ctx context.Context, input domain.CreateProjectInput) (domain.ProjectDetail, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ProjectDetail), args.Error(1)
}

func (m *projectServiceMock) GetProjectByID(ctx context.Context, projectID string) (domain.ProjectDetail, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(domain.ProjectDetail), args.Error(1)
}

func (m *projectServiceMock) GetAllParticipatingProjects(ctx context.Context, userID string) ([]domain.ParticipatingProject, error) {
	args := m.Called(ctx, userID)

	var projects []domain.ParticipatingProject
	if value := args.Get(0); value != nil {
		projects = value.([]domain.ParticipatingProject)
	}
	return projects, args.Error(1)
}

func (m *projectServiceMock) UpdateProjectByID(ctx context.Context, projectID, updaterID string, input domain.UpdateProjectInput) (domain.Project, error) {
	args := m.Called(ctx, projectID, updaterID, input)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *projectServiceMock) DeleteProjectByID(ctx context.Context, projectID, actorID string) (domain.DeleteProjectResult, error) {
	args := m.Called(ctx, projectID, actorID)
	return args.Get(0).(domain.DeleteProjectResult), args.Error(1)
}

type participantServiceMock struct {
	mock.Mock
}

func (m *participantServiceMock) ListParticipants(ctx context.Context, projectID string) ([]domain.ParticipantDetail, error) {
	args := m.Called(ctx, projectID)

	var participants []domain.ParticipantDetail
	if value := args.Get(0); value != nil {
		participants = value.([]domain.ParticipantDetail)
	}
	return participants, args.Error(1)
}

func (m *participantServiceMock) AddParticipant(ctx context.Context, projectID, actorID, userID string, role domain.Role) (domain.Participant, error) {
	args := m.Called(ctx, projectID, actorID, userID, role)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *participantServiceMock) UpdateParticipantRole(ctx context.Context, projectID, actorID, userID string, role domain.Role) (domain.Participant, error) {
	args := m.Called(ctx, projectID, actorID, userID, role)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *participantServiceMock) RemoveParticipant(ctx context.Context, projectID, actorID, userID string) error {
	args := m.Called(ctx, projectID, actorID, userID)
	return args.Error(0)
}

func (m *participantServiceMock) VerifyUserProjectAccess(ctx context.Context, projectID, userID string) (domain.Project, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *participantServiceMock) CheckProjectPermissions(ctx context.Context, projectID, userID string, allowed ...domain.Role) error {
	args := m.Called(ctx, projectID, userID, allowed)
	return args.Error(0)
}

type activityServiceMock struct {
	mock.Mock
}

func (m *activityServiceMock) LogActivity(ctx context.Context, input domain.LogActivityInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *activityServiceMock) GetProjectActivities(ctx context.Context, projectID string) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, projectID)

	var entries []domain.ActivityLog
	if value := args.Get(0); value != nil {
		entries = value.([]domain.ActivityLog)
	}
	return entries, args.Error(1)
}

// newRouter wires the language middleware and, when authenticated is true, a
// fixed caller in front of the handler under test.
func newRouter(authenticated bool) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	if authenticated {
		router.Use(middleware.SetPrincipal(domain.Principal{UserID: userID, Verify: domain.Verified}))
	}
	return router
}

func serve(router *gin.Engine, method, target, body, lang string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", lang)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, status, got.ErrDetails.Code)
	require.Equal(t, message, got.ErrDetails.Message)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var got T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}
