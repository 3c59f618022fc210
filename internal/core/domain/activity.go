package domain

import "time"

type ActivityEntity string

const (
	EntityProject     ActivityEntity = "project"
	EntityTask        ActivityEntity = "task"
	EntityParticipant ActivityEntity = "participant"
	EntityAttachment  ActivityEntity = "attachment"
)

type ActivityAction string

const (
	ActionCreate ActivityAction = "CREATE"
	ActionUpdate ActivityAction = "UPDATE"
	ActionDelete ActivityAction = "DELETE"
	ActionAdd    ActivityAction = "ADD"
	ActionRemove ActivityAction = "REMOVE"
)

// ActivityLog is an immutable audit entry. ModifiedBy is a snapshot of the
// actor's identity at the time of the change.
type ActivityLog struct {
	ID         string
	ProjectID  string
	Entity     ActivityEntity
	EntityID   string
	Action     ActivityAction
	ModifiedBy UserSummary
	Changes    Changes
	Detail     string
	CreatedAt  time.Time
}

type LogActivityInput struct {
	ProjectID  string
	Entity     ActivityEntity
	EntityID   string
	Action     ActivityAction
	ModifiedBy UserSummary
	Changes    Changes
	Detail     string
}
