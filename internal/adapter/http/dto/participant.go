package dto

type ParticipantItem struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	UserID    string   `json:"user_id"`
	Role      string   `json:"role"`
	Status    string   `json:"status"`
	JoinedAt  string   `json:"joined_at"`
	User      UserItem `json:"user"`
}

type ParticipantRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=leader staff"`
}

type RemoveParticipantRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}
