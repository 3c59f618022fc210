package domain

import "time"

type Role string

const (
	RoleLeader Role = "leader"
	RoleStaff  Role = "staff"
	// RoleCreator is never stored on a participant row. Permission checks
	// match it against the project's creator.
	RoleCreator Role = "creator"
)

func (r Role) Assignable() bool {
	return r == RoleLeader || r == RoleStaff
}

type ParticipantStatus string

const (
	ParticipantActive ParticipantStatus = "active"
	ParticipantLeft   ParticipantStatus = "left"
	ParticipantBanned ParticipantStatus = "banned"
)

type Participant struct {
	ID        string
	ProjectID string
	UserID    string
	Role      Role
	Status    ParticipantStatus
	JoinedAt  time.Time
	Deleted   bool
	DeletedAt *time.Time
}

func (p Participant) Active() bool {
	return p.Status == ParticipantActive && !p.Deleted
}

type ParticipantDetail struct {
	Participant
	User UserSummary
}
