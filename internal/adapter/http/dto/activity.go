package dto

type ActivityItem struct {
	ID         string                `json:"id"`
	ProjectID  string                `json:"project_id"`
	Entity     string                `json:"entity"`
	EntityID   string                `json:"entity_id"`
	Action     string                `json:"action"`
	ModifiedBy UserItem              `json:"modified_by"`
	Changes    map[string]ChangeItem `json:"changes"`
	Detail     string                `json:"detail"`
	CreatedAt  string                `json:"created_at"`
}
