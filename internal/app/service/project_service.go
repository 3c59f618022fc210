package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

type ProjectService struct {
	projects     ports.ProjectRepository
	tasks        ports.TaskRepository
	participants ports.ParticipantRepository
	attachments  ports.AttachmentRepository
	activities   ports.ActivityRepository
	users        ports.UserRepository
	tx           ports.Transactor
	members      *ParticipantService
	activity     *ActivityService
}

func NewProjectService(repos Repositories, members *ParticipantService, activity *ActivityService) *ProjectService {
	return &ProjectService{
		projects:     repos.Projects,
		tasks:        repos.Tasks,
		participants: repos.Participants,
		attachments:  repos.Attachments,
		activities:   repos.Activities,
		users:        repos.Users,
		tx:           repos.Tx,
		members:      members,
		activity:     activity,
	}
}

// CreateProject inserts the project and its memberships. The creator is always a
// member with the leader role; every other listed user joins as staff.
func (s *ProjectService) CreateProject(ctx context.Context, input domain.CreateProjectInput) (domain.ProjectDetail, error) {
	memberIDs := uniqueIDs(append([]string{input.CreatorID}, input.Participants...))
	found, err := s.users.ListByIDs(ctx, memberIDs)
	if err != nil {
		return domain.ProjectDetail{}, err
	}
	if len(found) != len(memberIDs) {
		return domain.ProjectDetail{}, domain.ErrUserNotFound
	}

	taken, err := s.projects.KeyExists(ctx, input.Key, "")
	if err != nil {
		return domain.ProjectDetail{}, err
	}
	if taken {
		return domain.ProjectDetail{}, domain.ErrProjectKeyTaken
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Key:         input.Key,
		CreatorID:   input.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	participants := make([]domain.Participant, 0, len(memberIDs))
	for _, userID := range memberIDs {
		role := domain.RoleStaff
		if userID == input.CreatorID {
			role = domain.RoleLeader
		}
		participants = append(participants, domain.Participant{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			UserID:    userID,
			Role:      role,
			Status:    domain.ParticipantActive,
			JoinedAt:  now,
		})
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, project); err != nil {
			return err
		}
		return s.participants.CreateMany(ctx, participants)
	})
	if err != nil {
		return domain.ProjectDetail{}, err
	}

	actor := actorSnapshot(ctx, s.users, input.CreatorID)
	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  project.ID,
		Entity:     domain.EntityProject,
		EntityID:   project.ID,
		Action:     domain.ActionCreate,
		ModifiedBy: actor,
		Changes:    domain.Changes{"projectId": {From: nil, To: project.ID}},
		Detail:     fmt.Sprintf("Project %q was created by %s", project.Title, actor.Username),
	})
	return s.GetProjectByID(ctx, project.ID)
}

// GetProjectByID assembles the project view. The related collections are loaded
// concurrently once the project itself is known to exist.
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (domain.ProjectDetail, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.ProjectDetail{}, err
	}

	detail := domain.ProjectDetail{Project: project}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		participants, err := s.members.ListParticipants(gctx, projectID)
		detail.Participants = participants
		return err
	})
	g.Go(func() error {
		tasks, err := s.tasks.ListByProject(gctx, projectID)
		detail.Tasks = tasks
		return err
	})
	g.Go(func() error {
		attachments, err := s.attachments.ListByProject(gctx, projectID)
		detail.Attachments = attachments
		return err
	})
	g.Go(func() error {
		revisions, err := s.projects.ListRevisions(gctx, projectID)
		detail.RevisionHistory = revisions
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ProjectDetail{}, err
	}
	return detail, nil
}

func (s *ProjectService) GetAllParticipatingProjects(ctx context.Context, userID string) ([]domain.ParticipatingProject, error) {
	memberships, err := s.participants.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []domain.ParticipatingProject{}, nil
	}

	projectIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		projectIDs = append(projectIDs, m.ProjectID)
	}
	projects, err := s.projects.ListByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	projectByID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
	}

	leaders, err := s.participants.ListLeaders(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	leaderByProject := make(map[string]domain.Participant, len(leaders))
	for _, l := range leaders {
		if _, ok := leaderByProject[l.ProjectID]; !ok {
			leaderByProject[l.ProjectID] = l
		}
	}

	userIDs := make([]string, 0, len(projects)+len(leaders))
	for _, p := range projects {
		userIDs = append(userIDs, p.CreatorID)
	}
	for _, l := range leaderByProject {
		userIDs = append(userIDs, l.UserID)
	}
	users, err := usersByID(ctx, s.users, userIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ParticipatingProject, 0, len(memberships))
	for _, m := range memberships {
		project, ok := projectByID[m.ProjectID]
		if !ok {
			continue
		}
		summary := domain.ParticipatingProject{
			ID:          project.ID,
			Title:       project.Title,
			Description: project.Description,
			Key:         project.Key,
			Role:        m.Role,
			CreatedAt:   project.CreatedAt,
			UpdatedAt:   project.UpdatedAt,
			Creator:     lookupUser(users, &project.CreatorID),
		}
		if leader, ok := leaderByProject[project.ID]; ok {
			user, ok := users[leader.UserID]
			if !ok {
				user = domain.UserSummary{ID: leader.UserID}
			}
			summary.Leader = &domain.ParticipantDetail{Participant: leader, User: user}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// UpdateProjectByID applies a partial update, appends a revision carrying the
// field diff and mirrors the same diff into the activity log.
func (s *ProjectService) UpdateProjectByID(ctx context.Context, projectID, updaterID string, input domain.UpdateProjectInput) (domain.Project, error) {
	if input.Empty() {
		return domain.Project{}, domain.ErrEmptyUpdate
	}
	if err := s.members.CheckProjectPermissions(ctx, projectID, updaterID, domain.RoleLeader, domain.RoleCreator); err != nil {
		return domain.Project{}, err
	}
	existing, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	actor, err := s.users.GetByID(ctx, updaterID)
	if err != nil {
		return domain.Project{}, err
	}
	if input.Key != nil && *input.Key != existing.Key {
		taken, err := s.projects.KeyExists(ctx, *input.Key, projectID)
		if err != nil {
			return domain.Project{}, err
		}
		if taken {
			return domain.Project{}, domain.ErrProjectKeyTaken
		}
	}

	now := time.Now().UTC()
	updated, changes := domain.ApplyProjectUpdate(existing, input)
	updated.HasBeenModified = true
	updated.UpdatedAt = now
	revision := domain.Revision{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		ModifiedAt:  now,
		ModifiedBy:  actor,
		Changes:     changes,
		Description: changes.Describe(actor.Username),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.projects.Update(ctx, updated); err != nil {
			return err
		}
		return s.projects.AppendRevision(ctx, revision)
	})
	if err != nil {
		return domain.Project{}, err
	}

	s.activity.record(ctx, domain.LogActivityInput{
		ProjectID:  projectID,
		Entity:     domain.EntityProject,
		EntityID:   projectID,
		Action:     domain.ActionUpdate,
		ModifiedBy: actor,
		Changes:    changes,
		Detail:     fmt.Sprintf("Project %q was updated by %s", updated.Title, actor.Username),
	})
	return updated, nil
}

// DeleteProjectByID soft-deletes the project's tasks, attachments, participants
// and activity entries, then the project row, all in one transaction.
func (s *ProjectService) DeleteProjectByID(ctx context.Context, projectID, actorID string) (domain.DeleteProjectResult, error) {
	if err := s.members.CheckProjectPermissions(ctx, projectID, actorID, domain.RoleLeader, domain.RoleCreator); err != nil {
		return domain.DeleteProjectResult{}, err
	}

	result := domain.DeleteProjectResult{ProjectID: projectID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		var err error
		if result.TaskCount, err = s.tasks.SoftDeleteByProject(ctx, projectID, now); err != nil {
			return err
		}
		if result.AttachmentCount, err = s.attachments.SoftDeleteByProject(ctx, projectID, now); err != nil {
			return err
		}
		if result.ParticipantCount, err = s.participants.SoftDeleteByProject(ctx, projectID, now); err != nil {
			return err
		}
		if result.LogCount, err = s.activities.SoftDeleteByProject(ctx, projectID, now); err != nil {
			return err
		}
		n, err := s.projects.SoftDelete(ctx, projectID, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrCascadeIncomplete
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCascadeIncomplete) {
			zap.L().Error("cascading project delete rolled back", zap.String("project_id", projectID), zap.Error(err))
		}
		return domain.DeleteProjectResult{}, err
	}

	cascadeDeletedRows.WithLabelValues(string(domain.EntityTask)).Add(float64(result.TaskCount))
	cascadeDeletedRows.WithLabelValues(string(domain.EntityAttachment)).Add(float64(result.AttachmentCount))
	cascadeDeletedRows.WithLabelValues(string(domain.EntityParticipant)).Add(float64(result.ParticipantCount))
	cascadeDeletedRows.WithLabelValues("activity").Add(float64(result.LogCount))
	zap.L().Info("project deleted",
		zap.String("project_id", projectID),
		zap.String("actor_id", actorID),
		zap.Int64("tasks", result.TaskCount),
		zap.Int64("attachments", result.AttachmentCount),
		zap.Int64("participants", result.ParticipantCount),
		zap.Int64("logs", result.LogCount),
	)
	return result, nil
}

var _ ports.ProjectService = (*ProjectService)(nil)
