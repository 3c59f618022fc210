package domain

import "time"

type TaskType string

const (
	TaskTypeTask    TaskType = "Task"
	TaskTypeSubtask TaskType = "Subtask"
	TaskTypeBug     TaskType = "Bug"
	TaskTypeEpic    TaskType = "Epic"
	TaskTypeStory   TaskType = "Story"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeTask, TaskTypeSubtask, TaskTypeBug, TaskTypeEpic, TaskTypeStory:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

// Task is a node of a project's task tree. Ancestors runs from the root down to
// the immediate parent, so Level always equals len(Ancestors).
type Task struct {
	ID           string
	ProjectID    string
	Title        string
	Description  string
	CreatorID    string
	AssigneeID   *string
	Type         TaskType
	ParentTaskID *string
	Ancestors    []string
	Level        int
	HasChildren  bool
	ChildCount   int
	Status       TaskStatus
	Priority     TaskPriority
	Progress     int
	DueDate      *time.Time
	Deleted      bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Task) IsRoot() bool {
	return t.ParentTaskID == nil
}

// ChildOf builds the hierarchy fields of a new direct child of t.
func (t Task) ChildOf() (ancestors []string, level int) {
	ancestors = make([]string, 0, len(t.Ancestors)+1)
	ancestors = append(ancestors, t.Ancestors...)
	ancestors = append(ancestors, t.ID)
	return ancestors, t.Level + 1
}

type TaskSummary struct {
	ID       string
	Title    string
	Status   TaskStatus
	Priority TaskPriority
}

func (t Task) Summary() TaskSummary {
	return TaskSummary{ID: t.ID, Title: t.Title, Status: t.Status, Priority: t.Priority}
}

// TaskDetail is a task enriched with the identities and relatives it references.
type TaskDetail struct {
	Task
	Creator  *UserSummary
	Assignee *UserSummary
	Parent   *TaskSummary
	Lineage  []TaskSummary
	Subtasks []Task
}

type CreateTaskInput struct {
	ProjectID    string
	CreatorID    string
	Title        string
	Description  string
	Type         TaskType
	AssigneeID   *string
	Priority     *TaskPriority
	Progress     *int
	DueDate      *time.Time
	ParentTaskID *string
}

// UpdateTaskInput carries a partial update. A nil pointer means "not provided";
// the *Set flags distinguish an explicit null from absence for clearable fields.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Type        *TaskType
	AssigneeID  *string
	AssigneeSet bool
	Status      *TaskStatus
	Priority    *TaskPriority
	Progress    *int
	DueDate     *time.Time
	DueDateSet  bool
	CreatorID   *string
}

func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Type == nil &&
		!in.AssigneeSet &&
		in.Status == nil &&
		in.Priority == nil &&
		in.Progress == nil &&
		!in.DueDateSet &&
		in.CreatorID == nil
}

type DeleteTaskResult struct {
	TaskID string
}

// AverageProgress returns the mean of the given progress values rounded half up.
// The second result is false when values is empty.
func AverageProgress(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	n := len(values)
	return (2*sum + n) / (2 * n), true
}
