package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	tx       ports.Transactor
	members  *ParticipantService
	activity *ActivityService
}

func NewTaskService(repos Repositories, members *ParticipantService, activity *ActivityService) *TaskService {
	return &TaskService{
		tasks:    repos.Tasks,
		users:    repos.Users,
		tx:       repos.Tx,
		members:  members,
		activity: activity,
	}
}

// CreateRootTask inserts a top-level task. Root tasks always start at zero
// progress; a supplied progress is range checked and otherwise ignored.
func (s *TaskService) CreateRootTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if !input.Type.Valid() {
		return domain.Task{}, domain.ErrInvalidTaskType
	}
	if input.Type == domain.TaskTypeSubtask {
		return domain.Task{}, domain.ErrRootTaskType
	}
	if err := s.checkCreateInput(ctx, input); err != nil {
		return domain.Task{}, err
	}

	task := newTask(input, time.Now().UTC())
	task.Type = input.Type
	if err := s.tasks.Create(ctx, task); err != nil {
		return domain.Task{}, err
	}

	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  task.ProjectID,
		Entity:     domain.EntityTask,
		EntityID:   task.ID,
		Action:     domain.ActionCreate,
		ModifiedBy: actorSnapshot(ctx, s.users, input.CreatorID),
		Changes:    domain.Changes{"taskId": {From: nil, To: task.ID}},
		Detail:     fmt.Sprintf("created task %s", task.Title),
	})
	return task, nil
}

// CreateSubTask inserts a child under an existing non-subtask parent of the same
// project, then recounts the parent's children and re-aggregates progress upward.
func (s *TaskService) CreateSubTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if input.ParentTaskID == nil || *input.ParentTaskID == "" {
		return domain.Task{}, domain.ErrParentTaskInvalid
	}
	if err := s.checkCreateInput(ctx, input); err != nil {
		return domain.Task{}, err
	}
	parentID := *input.ParentTaskID

	var subtask domain.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		parent, err := s.tasks.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrParentTaskInvalid
			}
			return err
		}
		if parent.ProjectID != input.ProjectID {
			return domain.ErrParentTaskForeign
		}
		if parent.Type == domain.TaskTypeSubtask {
			return domain.ErrParentTaskIsSubtask
		}

		subtask = newTask(input, time.Now().UTC())
		subtask.Type = domain.TaskTypeSubtask
		subtask.ParentTaskID = &parent.ID
		subtask.Ancestors, subtask.Level = parent.ChildOf()
		if input.Progress != nil {
			subtask.Progress = *input.Progress
		}
		if err := s.tasks.Create(ctx, subtask); err != nil {
			return err
		}
		if err := s.refreshChildStats(ctx, parent.ID); err != nil {
			return err
		}
		return s.propagateProgress(ctx, parent.ID)
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  subtask.ProjectID,
		Entity:     domain.EntityTask,
		EntityID:   subtask.ID,
		Action:     domain.ActionCreate,
		ModifiedBy: actorSnapshot(ctx, s.users, input.CreatorID),
		Changes: domain.Changes{
			"taskId":       {From: nil, To: subtask.ID},
			"parentTaskId": {From: nil, To: parentID},
		},
		Detail: fmt.Sprintf("created subtask %s under task %s", subtask.Title, parentID),
	})
	return subtask, nil
}

func (s *TaskService) checkCreateInput(ctx context.Context, input domain.CreateTaskInput) error {
	if input.Progress != nil && !validProgress(*input.Progress) {
		return domain.ErrInvalidProgress
	}
	if _, err := s.members.VerifyUserProjectAccess(ctx, input.ProjectID, input.CreatorID); err != nil {
		return err
	}
	return s.checkAssignee(ctx, input.ProjectID, input.AssigneeID)
}

func (s *TaskService) checkAssignee(ctx context.Context, projectID string, assigneeID *string) error {
	if assigneeID == nil {
		return nil
	}
	ok, err := s.members.isActiveParticipant(ctx, projectID, *assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAssigneeNotMember
	}
	return nil
}

func newTask(input domain.CreateTaskInput, now time.Time) domain.Task {
	priority := domain.TaskPriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}
	return domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		CreatorID:   input.CreatorID,
		AssigneeID:  input.AssigneeID,
		Ancestors:   []string{},
		Status:      domain.TaskStatusTodo,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func validProgress(p int) bool {
	return p >= domain.MinProgress && p <= domain.MaxProgress
}

// refreshChildStats recounts the non-deleted children of parentID and stores the
// result. It runs after the child row is written, so a concurrent writer outside
// the transaction can at worst leave a stale count until the next recount.
func (s *TaskService) refreshChildStats(ctx context.Context, parentID string) error {
	count, err := s.tasks.CountChildren(ctx, parentID)
	if err != nil {
		return err
	}
	return s.tasks.SetChildStats(ctx, parentID, count)
}

// propagateProgress walks from taskID toward the root, setting each task's
// progress to the rounded mean of its non-deleted children. The walk stops at
// the first task without children, at a deleted task, or at a root.
func (s *TaskService) propagateProgress(ctx context.Context, taskID string) error {
	visited := make(map[string]struct{})
	current := taskID
	for current != "" {
		if _, seen := visited[current]; seen {
			return fmt.Errorf("%w: cycle through task %s", domain.ErrHierarchyInconsistent, current)
		}
		visited[current] = struct{}{}

		task, err := s.tasks.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		children, err := s.tasks.ListChildren(ctx, current)
		if err != nil {
			return err
		}
		values := make([]int, 0, len(children))
		for _, child := range children {
			values = append(values, child.Progress)
		}
		progress, ok := domain.AverageProgress(values)
		if !ok {
			return nil
		}
		if err := s.tasks.UpdateProgress(ctx, current, progress, time.Now().UTC()); err != nil {
			return err
		}
		progressPropagationSteps.Inc()

		if task.ParentTaskID == nil {
			return nil
		}
		current = *task.ParentTaskID
	}
	return nil
}

func (s *TaskService) getInProject(ctx context.Context, projectID, taskID string) (domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if task.ProjectID != projectID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, projectID, taskID string) (domain.TaskDetail, error) {
	task, err := s.getInProject(ctx, projectID, taskID)
	if err != nil {
		return domain.TaskDetail{}, err
	}

	userIDs := []string{task.CreatorID}
	if task.AssigneeID != nil {
		userIDs = append(userIDs, *task.AssigneeID)
	}
	users, err := usersByID(ctx, s.users, userIDs)
	if err != nil {
		return domain.TaskDetail{}, err
	}

	lineage, err := s.lineage(ctx, task)
	if err != nil {
		return domain.TaskDetail{}, err
	}
	subtasks, err := s.tasks.ListChildren(ctx, task.ID)
	if err != nil {
		return domain.TaskDetail{}, err
	}

	detail := domain.TaskDetail{
		Task:     task,
		Creator:  lookupUser(users, &task.CreatorID),
		Assignee: lookupUser(users, task.AssigneeID),
		Lineage:  lineage,
		Subtasks: subtasks,
	}
	if n := len(lineage); n > 0 && task.ParentTaskID != nil && lineage[n-1].ID == *task.ParentTaskID {
		parent := lineage[n-1]
		detail.Parent = &parent
	}
	return detail, nil
}

// lineage returns summaries of the task's ancestors ordered root first.
func (s *TaskService) lineage(ctx context.Context, task domain.Task) ([]domain.TaskSummary, error) {
	if len(task.Ancestors) == 0 {
		return []domain.TaskSummary{}, nil
	}
	ancestors, err := s.tasks.ListByIDs(ctx, task.Ancestors)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Task, len(ancestors))
	for _, a := range ancestors {
		byID[a.ID] = a
	}
	summaries := make([]domain.TaskSummary, 0, len(task.Ancestors))
	for _, id := range task.Ancestors {
		if a, ok := byID[id]; ok {
			summaries = append(summaries, a.Summary())
		}
	}
	return summaries, nil
}

func (s *TaskService) GetTasksByProject(ctx context.Context, projectID string) ([]domain.TaskDetail, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(tasks)*2)
	parentIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		userIDs = append(userIDs, t.CreatorID)
		if t.AssigneeID != nil {
			userIDs = append(userIDs, *t.AssigneeID)
		}
		if t.ParentTaskID != nil {
			parentIDs = append(parentIDs, *t.ParentTaskID)
		}
	}
	users, err := usersByID(ctx, s.users, userIDs)
	if err != nil {
		return nil, err
	}
	parents := make(map[string]domain.TaskSummary)
	if ids := uniqueIDs(parentIDs); len(ids) > 0 {
		found, err := s.tasks.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			parents[p.ID] = p.Summary()
		}
	}

	details := make([]domain.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		detail := domain.TaskDetail{
			Task:     t,
			Creator:  lookupUser(users, &t.CreatorID),
			Assignee: lookupUser(users, t.AssigneeID),
		}
		if t.ParentTaskID != nil {
			if p, ok := parents[*t.ParentTaskID]; ok {
				detail.Parent = &p
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *TaskService) GetSubTasks(ctx context.Context, projectID, taskID string) ([]domain.Task, error) {
	task, err := s.getInProject(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListChildren(ctx, task.ID)
}

func (s *TaskService) UpdateTaskByID(ctx context.Context, projectID, taskID, updaterID string, input domain.UpdateTaskInput) (domain.TaskDetail, error) {
	if input.CreatorID != nil {
		return domain.TaskDetail{}, domain.ErrCreatorImmutable
	}
	if input.Empty() {
		return domain.TaskDetail{}, domain.ErrEmptyUpdate
	}
	if input.Progress != nil && !validProgress(*input.Progress) {
		return domain.TaskDetail{}, domain.ErrInvalidProgress
	}
	if _, err := s.members.VerifyUserProjectAccess(ctx, projectID, updaterID); err != nil {
		return domain.TaskDetail{}, err
	}

	existing, err := s.getInProject(ctx, projectID, taskID)
	if err != nil {
		return domain.TaskDetail{}, err
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return domain.TaskDetail{}, domain.ErrInvalidTaskType
		}
		if (*input.Type == domain.TaskTypeSubtask) != (existing.Type == domain.TaskTypeSubtask) {
			return domain.TaskDetail{}, domain.ErrSubtaskTypeChange
		}
	}
	if input.Progress != nil && existing.HasChildren {
		return domain.TaskDetail{}, domain.ErrProgressDerived
	}
	if input.AssigneeSet {
		if err := s.checkAssignee(ctx, projectID, input.AssigneeID); err != nil {
			return domain.TaskDetail{}, err
		}
	}

	updated, changes := domain.ApplyTaskUpdate(existing, input)
	updated.UpdatedAt = time.Now().UTC()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tasks.Update(ctx, updated); err != nil {
			return err
		}
		if input.Progress != nil && existing.ParentTaskID != nil {
			return s.propagateProgress(ctx, *existing.ParentTaskID)
		}
		return nil
	})
	if err != nil {
		return domain.TaskDetail{}, err
	}

	actor := actorSnapshot(ctx, s.users, updaterID)
	detail := changes.Describe(actor.Username)
	if detail == "" {
		detail = fmt.Sprintf("updated task %s", updated.Title)
	}
	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  projectID,
		Entity:     domain.EntityTask,
		EntityID:   taskID,
		Action:     domain.ActionUpdate,
		ModifiedBy: actor,
		Changes:    changes,
		Detail:     detail,
	})
	return s.GetTaskByID(ctx, projectID, taskID)
}

// DeleteTaskByID soft-deletes a single task. Its own subtasks are left in place;
// the parent's child counters and progress are recomputed from what remains.
func (s *TaskService) DeleteTaskByID(ctx context.Context, projectID, taskID, actorID string) (domain.DeleteTaskResult, error) {
	task, err := s.getInProject(ctx, projectID, taskID)
	if err != nil {
		return domain.DeleteTaskResult{}, err
	}
	if err := s.members.CheckProjectPermissions(ctx, task.ProjectID, actorID, domain.RoleLeader, domain.RoleCreator); err != nil {
		return domain.DeleteTaskResult{}, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.tasks.SoftDelete(ctx, task.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: task %s was not deleted", domain.ErrInternal, task.ID)
		}
		if task.ParentTaskID == nil {
			return nil
		}
		if err := s.refreshChildStats(ctx, *task.ParentTaskID); err != nil {
			return err
		}
		return s.propagateProgress(ctx, *task.ParentTaskID)
	})
	if err != nil {
		return domain.DeleteTaskResult{}, err
	}

	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  task.ProjectID,
		Entity:     domain.EntityTask,
		EntityID:   task.ID,
		Action:     domain.ActionDelete,
		ModifiedBy: actorSnapshot(ctx, s.users, actorID),
		Changes:    domain.Changes{"taskId": {From: task.ID, To: nil}},
		Detail:     fmt.Sprintf("deleted task %s", task.Title),
	})
	return domain.DeleteTaskResult{TaskID: task.ID}, nil
}

var _ ports.TaskService = (*TaskService)(nil)
