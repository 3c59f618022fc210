package mapper

import (
	"time"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/core/domain"
)

const dateLayout = "2006-01-02"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	ancestors := task.Ancestors
	if ancestors == nil {
		ancestors = []string{}
	}
	item := dto.TaskItem{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		Type:         string(task.Type),
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		Progress:     task.Progress,
		CreatorID:    task.CreatorID,
		AssigneeID:   task.AssigneeID,
		ParentTaskID: task.ParentTaskID,
		Ancestors:    ancestors,
		Level:        task.Level,
		HasChildren:  task.HasChildren,
		ChildCount:   task.ChildCount,
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(dateLayout)
		item.DueDate = &value
	}

	return item
}

func ToTaskDetailItems(details []domain.TaskDetail) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(details))
	for _, detail := range details {
		items = append(items, toEnrichedTaskItem(detail))
	}
	return items
}

func ToTaskDetailItem(detail domain.TaskDetail) dto.TaskDetailItem {
	lineage := make([]dto.TaskSummaryItem, 0, len(detail.Lineage))
	for _, summary := range detail.Lineage {
		lineage = append(lineage, toTaskSummaryItem(summary))
	}
	return dto.TaskDetailItem{
		TaskItem: toEnrichedTaskItem(detail),
		Lineage:  lineage,
		Subtasks: ToTaskItems(detail.Subtasks),
	}
}

func toEnrichedTaskItem(detail domain.TaskDetail) dto.TaskItem {
	item := ToTaskItem(detail.Task)
	item.Creator = toUserItemPtr(detail.Creator)
	item.Assignee = toUserItemPtr(detail.Assignee)
	if detail.Parent != nil {
		parent := toTaskSummaryItem(*detail.Parent)
		item.Parent = &parent
	}
	return item
}

func toTaskSummaryItem(summary domain.TaskSummary) dto.TaskSummaryItem {
	return dto.TaskSummaryItem{
		ID:       summary.ID,
		Title:    summary.Title,
		Status:   string(summary.Status),
		Priority: string(summary.Priority),
	}
}

func ToUserItem(user domain.UserSummary) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}

func toUserItemPtr(user *domain.UserSummary) *dto.UserItem {
	if user == nil {
		return nil
	}
	item := ToUserItem(*user)
	return &item
}
