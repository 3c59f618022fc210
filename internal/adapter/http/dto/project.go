package dto

type ProjectItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Key             string `json:"key"`
	CreatorID       string `json:"creator_id"`
	HasBeenModified bool   `json:"has_been_modified"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type ChangeItem struct {
	From any `json:"from"`
	To   any `json:"to"`
}

type RevisionItem struct {
	ModifiedAt  string                `json:"modified_at"`
	ModifiedBy  UserItem              `json:"modified_by"`
	Changes     map[string]ChangeItem `json:"changes"`
	Description string                `json:"description"`
}

type AttachmentItem struct {
	ID             string `json:"id"`
	AttachmentType string `json:"attachment_type"`
	FileURL        string `json:"file_url"`
	CreatedAt      string `json:"created_at"`
}

type ProjectDetailItem struct {
	ProjectItem
	Participants    []ParticipantItem `json:"participants"`
	Tasks           []TaskItem        `json:"tasks"`
	Attachments     []AttachmentItem  `json:"attachments"`
	RevisionHistory []RevisionItem    `json:"revision_history"`
}

type ParticipatingProjectItem struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Key         string           `json:"key"`
	Role        string           `json:"role"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
	Creator     *UserItem        `json:"creator"`
	Leader      *ParticipantItem `json:"leader"`
}

type DeleteProjectResponse struct {
	ProjectID        string `json:"project_id"`
	TaskCount        int64  `json:"task_count"`
	AttachmentCount  int64  `json:"attachment_count"`
	ParticipantCount int64  `json:"participant_count"`
	LogCount         int64  `json:"log_count"`
}

type CreateProjectRequest struct {
	Title        string   `json:"title" binding:"required,notblank,max=200"`
	Description  string   `json:"description" binding:"max=1000"`
	Key          string   `json:"key" binding:"required,notblank,max=32"`
	Participants []string `json:"participants" binding:"omitempty,dive,uuid"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Key         *string `json:"key" binding:"omitempty,notblank,max=32"`
}
