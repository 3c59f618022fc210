package mapper

import (
	"time"

	"trackr/internal/adapter/http/dto"
	"trackr/internal/core/domain"
)

func ToProjectItem(project domain.Project) dto.ProjectItem {
	return dto.ProjectItem{
		ID:              project.ID,
		Title:           project.Title,
		Description:     project.Description,
		Key:             project.Key,
		CreatorID:       project.CreatorID,
		HasBeenModified: project.HasBeenModified,
		CreatedAt:       project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       project.UpdatedAt.Format(time.RFC3339),
	}
}

func ToProjectDetailItem(detail domain.ProjectDetail) dto.ProjectDetailItem {
	attachments := make([]dto.AttachmentItem, 0, len(detail.Attachments))
	for _, a := range detail.Attachments {
		attachments = append(attachments, dto.AttachmentItem{
			ID:             a.ID,
			AttachmentType: a.AttachmentType,
			FileURL:        a.FileURL,
			CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		})
	}
	revisions := make([]dto.RevisionItem, 0, len(detail.RevisionHistory))
	for _, r := range detail.RevisionHistory {
		revisions = append(revisions, dto.RevisionItem{
			ModifiedAt:  r.ModifiedAt.Format(time.RFC3339),
			ModifiedBy:  ToUserItem(r.ModifiedBy),
			Changes:     ToChangeItems(r.Changes),
			Description: r.Description,
		})
	}
	return dto.ProjectDetailItem{
		ProjectItem:     ToProjectItem(detail.Project),
		Participants:    ToParticipantItems(detail.Participants),
		Tasks:           ToTaskItems(detail.Tasks),
		Attachments:     attachments,
		RevisionHistory: revisions,
	}
}

func ToParticipatingProjectItems(projects []domain.ParticipatingProject) []dto.ParticipatingProjectItem {
	items := make([]dto.ParticipatingProjectItem, 0, len(projects))
	for _, p := range projects {
		item := dto.ParticipatingProjectItem{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Key:         p.Key,
			Role:        string(p.Role),
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
			Creator:     toUserItemPtr(p.Creator),
		}
		if p.Leader != nil {
			leader := ToParticipantItem(*p.Leader)
			item.Leader = &leader
		}
		items = append(items, item)
	}
	return items
}

func ToDeleteProjectResponse(result domain.DeleteProjectResult) dto.DeleteProjectResponse {
	return dto.DeleteProjectResponse{
		ProjectID:        result.ProjectID,
		TaskCount:        result.TaskCount,
		AttachmentCount:  result.AttachmentCount,
		ParticipantCount: result.ParticipantCount,
		LogCount:         result.LogCount,
	}
}

func ToChangeItems(changes domain.Changes) map[string]dto.ChangeItem {
	items := make(map[string]dto.ChangeItem, len(changes))
	for field, change := range changes {
		items[field] = dto.ChangeItem{From: change.From, To: change.To}
	}
	return items
}
