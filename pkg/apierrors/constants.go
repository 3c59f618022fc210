package apierrors

const (
	MsgUnauthorized    = "unauthorized"
	MsgInvalidToken    = "invalidToken"
	MsgRateLimited     = "rateLimited"
	MsgInvalidPayload  = "invalidPayload"
	MsgInvalidTaskID   = "invalidTaskID"
	MsgInternalError   = "internalError"
	MsgCascadeFailed   = "cascadeIncomplete"
	MsgHierarchyBroken = "hierarchyInconsistent"

	MsgProjectNotFound     = "projectNotFound"
	MsgTaskNotFound        = "taskNotFound"
	MsgParticipantNotFound = "participantNotFound"
	MsgUserNotFound        = "userNotFound"

	MsgNotParticipant      = "notParticipant"
	MsgInsufficientRole    = "insufficientRole"
	MsgCannotRemoveCreator = "cannotRemoveCreator"

	MsgParentTaskInvalid   = "parentTaskInvalid"
	MsgParentTaskIsSubtask = "parentTaskIsSubtask"
	MsgParentTaskForeign   = "parentTaskForeign"
	MsgCreatorImmutable    = "creatorImmutable"
	MsgSubtaskTypeChange   = "subtaskTypeChange"
	MsgRootTaskType        = "rootTaskType"
	MsgAssigneeNotMember   = "assigneeNotMember"
	MsgInvalidProgress     = "invalidProgress"
	MsgProgressDerived     = "progressDerived"
	MsgInvalidTaskType     = "invalidTaskType"
	MsgInvalidRole         = "invalidRole"
	MsgEmptyUpdate         = "emptyUpdate"

	MsgProjectKeyTaken   = "projectKeyTaken"
	MsgParticipantExists = "participantExists"
	MsgValidationFailed  = "validationFailed"
	MsgForbidden         = "forbidden"
	MsgNotFound          = "notFound"
	MsgConflict          = "conflict"

	MsgFailCreateTask         = "failCreateTask"
	MsgFailListTask           = "errorListTask"
	MsgFailGetTask            = "failGetTask"
	MsgFailListSubtasks       = "failListSubtasks"
	MsgFailUpdateTask         = "failUpdateTask"
	MsgFailDeleteTask         = "failDeleteTask"
	MsgFailListProjects       = "failListProjects"
	MsgFailCreateProject      = "failCreateProject"
	MsgFailGetProject         = "failGetProject"
	MsgFailUpdateProject      = "failUpdateProject"
	MsgFailDeleteProject      = "failDeleteProject"
	MsgFailListParticipants   = "failListParticipants"
	MsgFailUpdateParticipants = "failUpdateParticipants"
	MsgFailListActivities     = "failListActivities"
)
