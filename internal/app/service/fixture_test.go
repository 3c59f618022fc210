package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trackr/internal/core/domain"
)

const (
	alice = "user-alice" // creator and leader of every seeded project
	bob   = "user-bob"   // staff
	carol = "user-carol" // leader
	dave  = "user-dave"  // not a member
)

type fixture struct {
	store    *memStore
	repos    Repositories
	activity *ActivityService
	members  *ParticipantService
	projects *ProjectService
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	for _, id := range []string{alice, bob, carol, dave} {
		store.addUser(id, strings.TrimPrefix(id, "user-"))
	}
	repos := store.repositories()
	activity := NewActivityService(repos.Activities)
	members := NewParticipantService(repos, activity)
	return &fixture{
		store:    store,
		repos:    repos,
		activity: activity,
		members:  members,
		projects: NewProjectService(repos, members, activity),
		tasks:    NewTaskService(repos, members, activity),
	}
}

// seedProject stores a project created by alice with alice and carol as leaders
// and bob as staff.
func (f *fixture) seedProject(t *testing.T, projectID string) domain.Project {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	project := domain.Project{
		ID:          projectID,
		Title:       "Apollo " + projectID,
		Description: "Launch tracking",
		Key:         "KEY-" + projectID,
		CreatorID:   alice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.repos.Projects.Create(ctx, project))

	roles := []struct {
		user string
		role domain.Role
	}{{alice, domain.RoleLeader}, {bob, domain.RoleStaff}, {carol, domain.RoleLeader}}
	participants := make([]domain.Participant, 0, len(roles))
	for _, r := range roles {
		participants = append(participants, domain.Participant{
			ID:        projectID + "-" + r.user,
			ProjectID: projectID,
			UserID:    r.user,
			Role:      r.role,
			Status:    domain.ParticipantActive,
			JoinedAt:  now,
		})
	}
	require.NoError(t, f.repos.Participants.CreateMany(ctx, participants))
	return project
}

func (f *fixture) createTask(t *testing.T, projectID, title string) domain.Task {
	t.Helper()
	task, err := f.tasks.CreateRootTask(context.Background(), domain.CreateTaskInput{
		ProjectID: projectID,
		CreatorID: alice,
		Title:     title,
		Type:      domain.TaskTypeTask,
	})
	require.NoError(t, err)
	return task
}

func (f *fixture) createSubtask(t *testing.T, parent domain.Task, title string, progress int) domain.Task {
	t.Helper()
	subtask, err := f.tasks.CreateSubTask(context.Background(), domain.CreateTaskInput{
		ProjectID:    parent.ProjectID,
		CreatorID:    bob,
		Title:        title,
		Progress:     &progress,
		ParentTaskID: &parent.ID,
	})
	require.NoError(t, err)
	return subtask
}

func (f *fixture) activities(t *testing.T, projectID string) []domain.ActivityLog {
	t.Helper()
	logs, err := f.activity.GetProjectActivities(context.Background(), projectID)
	require.NoError(t, err)
	return logs
}

func ptr[T any](v T) *T {
	return &v
}
