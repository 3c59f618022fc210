package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of them.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

var (
	ErrTaskNotFound        = fmt.Errorf("task %w", ErrNotFound)
	ErrProjectNotFound     = fmt.Errorf("project %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)

	ErrNotParticipant      = fmt.Errorf("%w: user is not a participant", ErrForbidden)
	ErrInsufficientRole    = fmt.Errorf("%w: leader or creator role required", ErrForbidden)
	ErrCannotRemoveCreator = fmt.Errorf("%w: project creator cannot be removed", ErrForbidden)

	ErrParentTaskInvalid   = fmt.Errorf("%w: parent task does not exist or has been deleted", ErrValidation)
	ErrParentTaskIsSubtask = fmt.Errorf("%w: parent task cannot be a subtask", ErrValidation)
	ErrParentTaskForeign   = fmt.Errorf("%w: parent task belongs to another project", ErrValidation)
	ErrCreatorImmutable    = fmt.Errorf("%w: updating creator is not allowed", ErrValidation)
	ErrSubtaskTypeChange   = fmt.Errorf("%w: task type cannot move into or out of subtask", ErrValidation)
	ErrRootTaskType        = fmt.Errorf("%w: root task cannot be of type subtask", ErrValidation)
	ErrAssigneeNotMember   = fmt.Errorf("%w: assignee is not an active participant", ErrValidation)
	ErrInvalidProgress     = fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	ErrProgressDerived     = fmt.Errorf("%w: progress of a task with subtasks is derived from them", ErrValidation)
	ErrInvalidTaskType     = fmt.Errorf("%w: invalid task type", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: participant role is invalid", ErrValidation)
	ErrEmptyUpdate         = fmt.Errorf("%w: no field to update", ErrValidation)

	ErrProjectKeyTaken   = fmt.Errorf("%w: project key already exists", ErrConflict)
	ErrParticipantExists = fmt.Errorf("%w: participant already exists", ErrConflict)

	ErrCascadeIncomplete     = fmt.Errorf("%w: project row was not updated during cascading delete", ErrInternal)
	ErrHierarchyInconsistent = fmt.Errorf("%w: task hierarchy is inconsistent", ErrInternal)
)
