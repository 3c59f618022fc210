package dto

type UserItem struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type TaskSummaryItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type TaskItem struct {
	ID           string           `json:"id"`
	ProjectID    string           `json:"project_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Type         string           `json:"type"`
	Status       string           `json:"status"`
	Priority     string           `json:"priority"`
	Progress     int              `json:"progress"`
	CreatorID    string           `json:"creator_id"`
	AssigneeID   *string          `json:"assignee_id"`
	ParentTaskID *string          `json:"parent_task_id"`
	Ancestors    []string         `json:"ancestors"`
	Level        int              `json:"level"`
	HasChildren  bool             `json:"has_children"`
	ChildCount   int              `json:"child_count"`
	DueDate      *string          `json:"due_date"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
	Creator      *UserItem        `json:"creator,omitempty"`
	Assignee     *UserItem        `json:"assignee,omitempty"`
	Parent       *TaskSummaryItem `json:"parent,omitempty"`
}

type TaskDetailItem struct {
	TaskItem
	Lineage  []TaskSummaryItem `json:"lineage"`
	Subtasks []TaskItem        `json:"subtasks"`
}

type DeleteTaskResponse struct {
	TaskID string `json:"task_id"`
}

// CreateTaskRequest is shared by root task and subtask creation. Type is
// ignored for subtasks and Progress is ignored for root tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=255"`
	Description string  `json:"description" binding:"max=65535"`
	Type        string  `json:"type" binding:"omitempty,task_type"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=Low Medium High Urgent"`
	Progress    *int    `json:"progress" binding:"omitempty,gte=0,lte=100"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Type        *string `json:"type" binding:"omitempty,task_type"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	Status      *string `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' Completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=Low Medium High Urgent"`
	Progress    *int    `json:"progress" binding:"omitempty,gte=0,lte=100"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Creator     *string `json:"creator"`
}
