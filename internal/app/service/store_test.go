package service

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"trackr/internal/core/domain"
)

// memStore is an in-memory implementation of every repository port. Rows carry
// an insertion sequence so "most recent first" orderings stay deterministic.
type memStore struct {
	mu  sync.Mutex
	seq int

	users        map[string]domain.UserSummary
	projects     map[string]domain.Project
	revisions    []domain.Revision
	participants map[string]memRow[domain.Participant]
	tasks        map[string]memRow[domain.Task]
	attachments  map[string]memAttachment
	activities   map[string]memRow[domain.ActivityLog]
	deletedLogs  map[string]bool

	activityErr         error
	skipProjectSoftDel  bool
	transactions        int
	rolledBack          int
	progressUpdateCalls int
}

type memRow[T any] struct {
	value T
	seq   int
}

type memAttachment struct {
	attachment domain.Attachment
	projectID  string
	deleted    bool
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]domain.UserSummary{},
		projects:     map[string]domain.Project{},
		participants: map[string]memRow[domain.Participant]{},
		tasks:        map[string]memRow[domain.Task]{},
		attachments:  map[string]memAttachment{},
		activities:   map[string]memRow[domain.ActivityLog]{},
		deletedLogs:  map[string]bool{},
	}
}

func (s *memStore) repositories() Repositories {
	return Repositories{
		Tasks:        memTasks{s},
		Projects:     memProjects{s},
		Participants: memParticipants{s},
		Attachments:  memAttachments{s},
		Activities:   memActivities{s},
		Users:        memUsers{s},
		Tx:           memTx{s},
	}
}

func (s *memStore) next() int {
	s.seq++
	return s.seq
}

func (s *memStore) addUser(id, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = domain.UserSummary{ID: id, Username: username, Email: username + "@example.com"}
}

func (s *memStore) task(t *testing.T, id string) domain.Task {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.tasks[id]
	if !ok {
		t.Fatalf("task %s not stored", id)
	}
	return row.value
}

func (s *memStore) project(id string) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects[id]
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memStore{
		seq:          s.seq,
		projects:     maps.Clone(s.projects),
		revisions:    slices.Clone(s.revisions),
		participants: maps.Clone(s.participants),
		tasks:        maps.Clone(s.tasks),
		attachments:  maps.Clone(s.attachments),
		activities:   maps.Clone(s.activities),
		deletedLogs:  maps.Clone(s.deletedLogs),
	}
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.projects = snap.projects
	s.revisions = snap.revisions
	s.participants = snap.participants
	s.tasks = snap.tasks
	s.attachments = snap.attachments
	s.activities = snap.activities
	s.deletedLogs = snap.deletedLogs
}

// memTx restores the pre-transaction state when fn fails.
type memTx struct{ *memStore }

func (tx memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := tx.snapshot()
	tx.mu.Lock()
	tx.transactions++
	tx.mu.Unlock()
	if err := fn(ctx); err != nil {
		tx.restore(snap)
		tx.mu.Lock()
		tx.rolledBack++
		tx.mu.Unlock()
		return err
	}
	return nil
}

type memTasks struct{ *memStore }

func (r memTasks) Create(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.Ancestors = slices.Clone(task.Ancestors)
	r.tasks[task.ID] = memRow[domain.Task]{value: task, seq: r.next()}
	return nil
}

func (r memTasks) GetByID(_ context.Context, id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.tasks[id]
	if !ok || row.value.Deleted {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return row.value, nil
}

func (r memTasks) ListByIDs(_ context.Context, ids []string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Task{}
	for _, id := range ids {
		if row, ok := r.tasks[id]; ok {
			out = append(out, row.value)
		}
	}
	return out, nil
}

func (r memTasks) list(match func(domain.Task) bool) []domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := []memRow[domain.Task]{}
	for _, row := range r.tasks {
		if !row.value.Deleted && match(row.value) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.value)
	}
	return out
}

func (r memTasks) ListByProject(_ context.Context, projectID string) ([]domain.Task, error) {
	return r.list(func(t domain.Task) bool { return t.ProjectID == projectID }), nil
}

func (r memTasks) ListChildren(_ context.Context, parentID string) ([]domain.Task, error) {
	return r.list(func(t domain.Task) bool { return t.ParentTaskID != nil && *t.ParentTaskID == parentID }), nil
}

func (r memTasks) CountChildren(ctx context.Context, parentID string) (int, error) {
	children, err := r.ListChildren(ctx, parentID)
	return len(children), err
}

func (r memTasks) Update(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.tasks[task.ID]
	if !ok || row.value.Deleted {
		return domain.ErrTaskNotFound
	}
	row.value = task
	r.tasks[task.ID] = row
	return nil
}

func (r memTasks) UpdateProgress(_ context.Context, id string, progress int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progressUpdateCalls++
	row := r.tasks[id]
	row.value.Progress = progress
	row.value.UpdatedAt = at
	r.tasks[id] = row
	return nil
}

func (r memTasks) SetChildStats(_ context.Context, id string, childCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.tasks[id]
	row.value.ChildCount = childCount
	row.value.HasChildren = childCount > 0
	r.tasks[id] = row
	return nil
}

func (r memTasks) SoftDelete(_ context.Context, id string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.tasks[id]
	if !ok || row.value.Deleted {
		return 0, nil
	}
	row.value.Deleted = true
	row.value.DeletedAt = &at
	r.tasks[id] = row
	return 1, nil
}

func (r memTasks) SoftDeleteByProject(_ context.Context, projectID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, row := range r.tasks {
		if row.value.ProjectID == projectID && !row.value.Deleted {
			row.value.Deleted = true
			row.value.DeletedAt = &at
			r.tasks[id] = row
			n++
		}
	}
	return n, nil
}

type memProjects struct{ *memStore }

func (r memProjects) Create(_ context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r memProjects) GetByID(_ context.Context, id string) (domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.Deleted {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return p, nil
}

func (r memProjects) ListByIDs(_ context.Context, ids []string) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Project{}
	for _, id := range ids {
		if p, ok := r.projects[id]; ok && !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProjects) KeyExists(_ context.Context, key, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.Key == key && p.ID != excludeID && !p.Deleted {
			return true, nil
		}
	}
	return false, nil
}

func (r memProjects) Update(_ context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[project.ID]; !ok || p.Deleted {
		return domain.ErrProjectNotFound
	}
	r.projects[project.ID] = project
	return nil
}

func (r memProjects) AppendRevision(_ context.Context, revision domain.Revision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revisions = append(r.revisions, revision)
	return nil
}

func (r memProjects) ListRevisions(_ context.Context, projectID string) ([]domain.Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Revision{}
	for _, rev := range r.revisions {
		if rev.ProjectID == projectID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r memProjects) SoftDelete(_ context.Context, id string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if r.skipProjectSoftDel || !ok || p.Deleted {
		return 0, nil
	}
	p.Deleted = true
	p.DeletedAt = &at
	r.projects[id] = p
	return 1, nil
}

type memParticipants struct{ *memStore }

func (r memParticipants) CreateMany(_ context.Context, participants []domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range participants {
		for _, row := range r.participants {
			if row.value.ProjectID == p.ProjectID && row.value.UserID == p.UserID {
				return domain.ErrParticipantExists
			}
		}
		r.participants[p.ID] = memRow[domain.Participant]{value: p, seq: r.next()}
	}
	return nil
}

func (r memParticipants) find(projectID, userID string, activeOnly bool) (domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.participants {
		p := row.value
		if p.ProjectID != projectID || p.UserID != userID {
			continue
		}
		if activeOnly && !p.Active() {
			continue
		}
		return p, nil
	}
	return domain.Participant{}, domain.ErrParticipantNotFound
}

func (r memParticipants) Find(_ context.Context, projectID, userID string) (domain.Participant, error) {
	return r.find(projectID, userID, false)
}

func (r memParticipants) FindActive(_ context.Context, projectID, userID string) (domain.Participant, error) {
	return r.find(projectID, userID, true)
}

func (r memParticipants) list(match func(domain.Participant) bool, newestFirst bool) []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := []memRow[domain.Participant]{}
	for _, row := range r.participants {
		if row.value.Active() && match(row.value) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if newestFirst {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.value)
	}
	return out
}

func (r memParticipants) ListActiveByProject(_ context.Context, projectID string) ([]domain.Participant, error) {
	return r.list(func(p domain.Participant) bool { return p.ProjectID == projectID }, true), nil
}

func (r memParticipants) ListActiveByUser(_ context.Context, userID string) ([]domain.Participant, error) {
	return r.list(func(p domain.Participant) bool { return p.UserID == userID }, true), nil
}

func (r memParticipants) ListLeaders(_ context.Context, projectIDs []string) ([]domain.Participant, error) {
	return r.list(func(p domain.Participant) bool {
		return p.Role == domain.RoleLeader && slices.Contains(projectIDs, p.ProjectID)
	}, false), nil
}

func (r memParticipants) Update(_ context.Context, participant domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.participants[participant.ID]
	if !ok {
		return domain.ErrParticipantNotFound
	}
	row.value = participant
	r.participants[participant.ID] = row
	return nil
}

func (r memParticipants) SoftDeleteByProject(_ context.Context, projectID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, row := range r.participants {
		if row.value.ProjectID == projectID && !row.value.Deleted {
			row.value.Deleted = true
			row.value.DeletedAt = &at
			r.participants[id] = row
			n++
		}
	}
	return n, nil
}

type memAttachments struct{ *memStore }

func (r memAttachments) ListByProject(_ context.Context, projectID string) ([]domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Attachment{}
	for _, a := range r.attachments {
		if a.projectID == projectID && !a.deleted {
			out = append(out, a.attachment)
		}
	}
	return out, nil
}

func (r memAttachments) SoftDeleteByProject(_ context.Context, projectID string, _ time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.attachments {
		if a.projectID == projectID && !a.deleted {
			a.deleted = true
			r.attachments[id] = a
			n++
		}
	}
	return n, nil
}

type memActivities struct{ *memStore }

func (r memActivities) Create(_ context.Context, entry domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activityErr != nil {
		return r.activityErr
	}
	r.activities[entry.ID] = memRow[domain.ActivityLog]{value: entry, seq: r.next()}
	return nil
}

func (r memActivities) ListByProject(_ context.Context, projectID string) ([]domain.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := []memRow[domain.ActivityLog]{}
	for id, row := range r.activities {
		if row.value.ProjectID == projectID && !r.deletedLogs[id] {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.value)
	}
	return out, nil
}

func (r memActivities) SoftDeleteByProject(_ context.Context, projectID string, _ time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, row := range r.activities {
		if row.value.ProjectID == projectID && !r.deletedLogs[id] {
			r.deletedLogs[id] = true
			n++
		}
	}
	return n, nil
}

type memUsers struct{ *memStore }

func (r memUsers) GetByID(_ context.Context, id string) (domain.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.UserSummary{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (r memUsers) ListByIDs(_ context.Context, ids []string) ([]domain.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.UserSummary{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

var errStorage = errors.New("storage unavailable")
