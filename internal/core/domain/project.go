package domain

import "time"

type Project struct {
	ID              string
	Title           string
	Description     string
	Key             string
	CreatorID       string
	HasBeenModified bool
	Deleted         bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Revision is one entry of a project's append-only revision history.
type Revision struct {
	ID          string
	ProjectID   string
	ModifiedAt  time.Time
	ModifiedBy  UserSummary
	Changes     Changes
	Description string
}

type Attachment struct {
	ID             string
	AttachmentType string
	FileURL        string
	CreatedAt      time.Time
}

// ProjectDetail is the aggregated single-project view.
type ProjectDetail struct {
	Project
	Participants    []ParticipantDetail
	Tasks           []Task
	Attachments     []Attachment
	RevisionHistory []Revision
}

// ParticipatingProject is the flattened summary returned when listing the
// projects a user takes part in.
type ParticipatingProject struct {
	ID          string
	Title       string
	Description string
	Key         string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Creator     *UserSummary
	Leader      *ParticipantDetail
}

type CreateProjectInput struct {
	Title        string
	Description  string
	Key          string
	CreatorID    string
	Participants []string
}

type UpdateProjectInput struct {
	Title       *string
	Description *string
	Key         *string
}

func (in UpdateProjectInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Key == nil
}

// DeleteProjectResult reports how many rows each cascade step soft-deleted.
type DeleteProjectResult struct {
	ProjectID        string
	TaskCount        int64
	AttachmentCount  int64
	ParticipantCount int64
	LogCount         int64
}
