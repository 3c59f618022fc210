package mapper

import (
	"time"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/core/domain"
)

func ToParticipantItems(participants []domain.ParticipantDetail) []dto.ParticipantItem {
	items := make([]dto.ParticipantItem, 0, len(participants))
	for _, p := range participants {
		items = append(items, ToParticipantItem(p))
	}
	return items
}

func ToParticipantItem(p domain.ParticipantDetail) dto.ParticipantItem {
	item := toBareParticipantItem(p.Participant)
	item.User = ToUserItem(p.User)
	return item
}

// ToParticipantRowItem maps a participant whose identity was not loaded; only
// the user id is filled in.
func ToParticipantRowItem(p domain.Participant) dto.ParticipantItem {
	item := toBareParticipantItem(p)
	item.User = dto.UserItem{ID: p.UserID}
	return item
}

func toBareParticipantItem(p domain.Participant) dto.ParticipantItem {
	return dto.ParticipantItem{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		UserID:    p.UserID,
		Role:      string(p.Role),
		Status:    string(p.Status),
		JoinedAt:  p.JoinedAt.Format(time.RFC3339),
	}
}

func ToActivityItems(entries []domain.ActivityLog) []dto.ActivityItem {
	items := make([]dto.ActivityItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityItem{
			ID:         e.ID,
			ProjectID:  e.ProjectID,
			Entity:     string(e.Entity),
			EntityID:   e.EntityID,
			Action:     string(e.Action),
			ModifiedBy: ToUserItem(e.ModifiedBy),
			Changes:    ToChangeItems(e.Changes),
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}
	return items
}
