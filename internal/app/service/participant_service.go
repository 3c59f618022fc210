package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

// ParticipantService owns project membership and the access gates built on it.
type ParticipantService struct {
	projects     ports.ProjectRepository
	participants ports.ParticipantRepository
	users        ports.UserRepository
	activity     *ActivityService
}

func NewParticipantService(repos Repositories, activity *ActivityService) *ParticipantService {
	return &ParticipantService{
		projects:     repos.Projects,
		participants: repos.Participants,
		users:        repos.Users,
		activity:     activity,
	}
}

// VerifyUserProjectAccess is the read-level gate: the project must exist and the
// user must hold an active membership, whatever the role.
func (s *ParticipantService) VerifyUserProjectAccess(ctx context.Context, projectID, userID string) (domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if _, err := s.participants.FindActive(ctx, projectID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Project{}, domain.ErrNotParticipant
		}
		return domain.Project{}, err
	}
	return project, nil
}

// CheckProjectPermissions requires an active membership whose role is in allowed.
// Listing domain.RoleCreator also admits the project's creator.
func (s *ParticipantService) CheckProjectPermissions(ctx context.Context, projectID, userID string, allowed ...domain.Role) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if slices.Contains(allowed, domain.RoleCreator) && project.CreatorID == userID {
		return nil
	}
	participant, err := s.participants.FindActive(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotParticipant
		}
		return err
	}
	if !slices.Contains(allowed, participant.Role) {
		return domain.ErrInsufficientRole
	}
	return nil
}

func (s *ParticipantService) isActiveParticipant(ctx context.Context, projectID, userID string) (bool, error) {
	_, err := s.participants.FindActive(ctx, projectID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *ParticipantService) ListParticipants(ctx context.Context, projectID string) ([]domain.ParticipantDetail, error) {
	participants, err := s.participants.ListActiveByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.withIdentity(ctx, participants)
}

func (s *ParticipantService) withIdentity(ctx context.Context, participants []domain.Participant) ([]domain.ParticipantDetail, error) {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	users, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	details := make([]domain.ParticipantDetail, 0, len(participants))
	for _, p := range participants {
		user, ok := users[p.UserID]
		if !ok {
			user = domain.UserSummary{ID: p.UserID}
		}
		details = append(details, domain.ParticipantDetail{Participant: p, User: user})
	}
	return details, nil
}

// AddParticipant inserts a membership, or reactivates a row left behind by an
// earlier removal.
func (s *ParticipantService) AddParticipant(ctx context.Context, projectID, actorID, userID string, role domain.Role) (domain.Participant, error) {
	if !role.Assignable() {
		return domain.Participant{}, domain.ErrInvalidRole
	}
	if err := s.CheckProjectPermissions(ctx, projectID, actorID, domain.RoleLeader, domain.RoleCreator); err != nil {
		return domain.Participant{}, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Participant{}, err
	}

	now := time.Now().UTC()
	existing, err := s.participants.Find(ctx, projectID, userID)
	switch {
	case err == nil && existing.Active():
		return domain.Participant{}, domain.ErrParticipantExists
	case err == nil:
		existing.Role = role
		existing.Status = domain.ParticipantActive
		existing.Deleted = false
		existing.DeletedAt = nil
		existing.JoinedAt = now
		if err := s.participants.Update(ctx, existing); err != nil {
			return domain.Participant{}, err
		}
	case errors.Is(err, domain.ErrNotFound):
		existing = domain.Participant{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			UserID:    userID,
			Role:      role,
			Status:    domain.ParticipantActive,
			JoinedAt:  now,
		}
		if err := s.participants.CreateMany(ctx, []domain.Participant{existing}); err != nil {
			return domain.Participant{}, err
		}
	default:
		return domain.Participant{}, err
	}

	actor := actorSnapshot(ctx, s.users, actorID)
	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  projectID,
		Entity:     domain.EntityParticipant,
		EntityID:   existing.ID,
		Action:     domain.ActionAdd,
		ModifiedBy: actor,
		Changes: domain.Changes{
			"userId": {From: nil, To: userID},
			"role":   {From: nil, To: string(role)},
		},
		Detail: fmt.Sprintf("%s added %s as %s", actor.Username, user.Username, role),
	})
	return existing, nil
}

func (s *ParticipantService) UpdateParticipantRole(ctx context.Context, projectID, actorID, userID string, role domain.Role) (domain.Participant, error) {
	if !role.Assignable() {
		return domain.Participant{}, domain.ErrInvalidRole
	}
	if err := s.CheckProjectPermissions(ctx, projectID, actorID, domain.RoleLeader, domain.RoleCreator); err != nil {
		return domain.Participant{}, err
	}
	participant, err := s.participants.FindActive(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Participant{}, domain.ErrParticipantNotFound
		}
		return domain.Participant{}, err
	}

	previous := participant.Role
	participant.Role = role
	if err := s.participants.Update(ctx, participant); err != nil {
		return domain.Participant{}, err
	}

	actor := actorSnapshot(ctx, s.users, actorID)
	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  projectID,
		Entity:     domain.EntityParticipant,
		EntityID:   participant.ID,
		Action:     domain.ActionUpdate,
		ModifiedBy: actor,
		Changes:    domain.Changes{"role": {From: string(previous), To: string(role)}},
		Detail:     fmt.Sprintf("%s changed role of %s from %s to %s", actor.Username, userID, previous, role),
	})
	return participant, nil
}

// RemoveParticipant soft-deletes a membership. Users may always remove
// themselves; removing someone else takes leader or creator rights.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, projectID, actorID, userID string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if actorID != userID {
		if err := s.CheckProjectPermissions(ctx, projectID, actorID, domain.RoleLeader, domain.RoleCreator); err != nil {
			return err
		}
	}
	if userID == project.CreatorID {
		return domain.ErrCannotRemoveCreator
	}
	participant, err := s.participants.FindActive(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrParticipantNotFound
		}
		return err
	}

	now := time.Now().UTC()
	participant.Status = domain.ParticipantLeft
	participant.Deleted = true
	participant.DeletedAt = &now
	if err := s.participants.Update(ctx, participant); err != nil {
		return err
	}

	actor := actorSnapshot(ctx, s.users, actorID)
	detail := fmt.Sprintf("%s removed %s from the project", actor.Username, userID)
	if actorID == userID {
		detail = fmt.Sprintf("%s left the project", actor.Username)
	}
	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  projectID,
		Entity:     domain.EntityParticipant,
		EntityID:   participant.ID,
		Action:     domain.ActionRemove,
		ModifiedBy: actor,
		Changes:    domain.Changes{"userId": {From: userID, To: nil}},
		Detail:     detail,
	})
	return nil
}

var _ ports.ParticipantService = (*ParticipantService)(nil)
