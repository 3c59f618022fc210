package mapper

import (
	"errors"
	"net/http"

	"trackr/internal/core/domain"
	"trackr/pkg/apierrors"
)

var errorKeys = []struct {
	err error
	key string
}{
	{domain.ErrProjectNotFound, apierrors.MsgProjectNotFound},
	{domain.ErrTaskNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrParticipantNotFound, apierrors.MsgParticipantNotFound},
	{domain.ErrUserNotFound, apierrors.MsgUserNotFound},
	{domain.ErrNotParticipant, apierrors.MsgNotParticipant},
	{domain.ErrInsufficientRole, apierrors.MsgInsufficientRole},
	{domain.ErrCannotRemoveCreator, apierrors.MsgCannotRemoveCreator},
	{domain.ErrParentTaskInvalid, apierrors.MsgParentTaskInvalid},
	{domain.ErrParentTaskIsSubtask, apierrors.MsgParentTaskIsSubtask},
	{domain.ErrParentTaskForeign, apierrors.MsgParentTaskForeign},
	{domain.ErrCreatorImmutable, apierrors.MsgCreatorImmutable},
	{domain.ErrSubtaskTypeChange, apierrors.MsgSubtaskTypeChange},
	{domain.ErrRootTaskType, apierrors.MsgRootTaskType},
	{domain.ErrAssigneeNotMember, apierrors.MsgAssigneeNotMember},
	{domain.ErrInvalidProgress, apierrors.MsgInvalidProgress},
	{domain.ErrProgressDerived, apierrors.MsgProgressDerived},
	{domain.ErrInvalidTaskType, apierrors.MsgInvalidTaskType},
	{domain.ErrInvalidRole, apierrors.MsgInvalidRole},
	{domain.ErrEmptyUpdate, apierrors.MsgEmptyUpdate},
	{domain.ErrProjectKeyTaken, apierrors.MsgProjectKeyTaken},
	{domain.ErrParticipantExists, apierrors.MsgParticipantExists},
	{domain.ErrCascadeIncomplete, apierrors.MsgCascadeFailed},
	{domain.ErrHierarchyInconsistent, apierrors.MsgHierarchyBroken},
}

// ToErrorResponse classifies err by its domain kind. Unknown errors are
// internal; their message key is fallbackKey.
func ToErrorResponse(err error, fallbackKey string) (int, string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError && !errors.Is(err, domain.ErrInternal) {
		return status, fallbackKey
	}
	for _, entry := range errorKeys {
		if errors.Is(err, entry.err) {
			return status, entry.key
		}
	}
	switch status {
	case http.StatusNotFound:
		return status, apierrors.MsgNotFound
	case http.StatusForbidden:
		return status, apierrors.MsgForbidden
	case http.StatusBadRequest:
		return status, apierrors.MsgValidationFailed
	case http.StatusConflict:
		return status, apierrors.MsgConflict
	}
	return status, fallbackKey
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
