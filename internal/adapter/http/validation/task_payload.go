package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/core/domain"
)

var ErrInvalidPayload = errors.New("invalid payload")

const dateLayout = "2006-01-02"

// BuildCreateTaskInput converts a bound request. parentTaskID is nil for root
// tasks; subtasks always get the Subtask type.
func BuildCreateTaskInput(req dto.CreateTaskRequest, projectID, creatorID string, parentTaskID *string) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidPayload
	}

	taskType := domain.TaskTypeTask
	if req.Type != "" {
		taskType = domain.TaskType(req.Type)
	}
	if parentTaskID != nil {
		taskType = domain.TaskTypeSubtask
	}

	var priority *domain.TaskPriority
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		priority = &value
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		ProjectID:    projectID,
		CreatorID:    creatorID,
		Title:        title,
		Description:  req.Description,
		Type:         taskType,
		AssigneeID:   req.AssigneeID,
		Priority:     priority,
		Progress:     req.Progress,
		DueDate:      dueDate,
		ParentTaskID: parentTaskID,
	}, nil
}

// BuildUpdateTaskInput converts a partial update. raw is the decoded body and
// tells an explicit null apart from an absent field: assignee_id and due_date
// may be cleared with null, other fields may not be null.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	for _, field := range []string{"title", "description", "type", "status", "priority", "progress"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, ErrInvalidPayload
		}
	}

	input := domain.UpdateTaskInput{
		Description: req.Description,
		Progress:    req.Progress,
	}

	if hasJSONField(raw, "creator") {
		// Any creator value, null included, is an attempt to reassign it.
		creator := ""
		if req.Creator != nil {
			creator = *req.Creator
		}
		input.CreatorID = &creator
	}

	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidPayload
		}
		input.Title = &value
	}
	if req.Type != nil {
		value := domain.TaskType(*req.Type)
		input.Type = &value
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		input.Status = &value
	}
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		input.Priority = &value
	}

	if hasJSONField(raw, "assignee_id") {
		input.AssigneeSet = true
		input.AssigneeID = req.AssigneeID
	}

	if hasJSONField(raw, "due_date") {
		dueDate, err := parseDate(req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.DueDateSet = true
		input.DueDate = dueDate
	}

	return input, nil
}

func BuildUpdateProjectInput(req dto.UpdateProjectRequest, raw map[string]json.RawMessage) (domain.UpdateProjectInput, error) {
	for _, field := range []string{"title", "description", "key"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateProjectInput{}, ErrInvalidPayload
		}
	}
	input := domain.UpdateProjectInput{Description: req.Description}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		input.Title = &value
	}
	if req.Key != nil {
		value := strings.TrimSpace(*req.Key)
		input.Key = &value
	}
	return input, nil
}

func BuildCreateProjectInput(req dto.CreateProjectRequest, creatorID string) domain.CreateProjectInput {
	return domain.CreateProjectInput{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Key:          strings.TrimSpace(req.Key),
		CreatorID:    creatorID,
		Participants: req.Participants,
	}
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, ErrInvalidPayload
	}
	return &parsed, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
