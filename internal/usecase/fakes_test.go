package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

type seqUUID struct{ n int }

func (g *seqUUID) NewUUID() string {
	g.n++
	return fmt.Sprintf("uuid-%d", g.n)
}

type fakeNotificationRepo struct {
	batches    [][]*entity.Notification
	failInsert bool
}

func (r *fakeNotificationRepo) InsertMany(ctx context.Context, notifications []*entity.Notification) error {
	if r.failInsert {
		return errors.New("insert failed")
	}
	r.batches = append(r.batches, notifications)
	return nil
}

func (r *fakeNotificationRepo) all() []*entity.Notification {
	var out []*entity.Notification
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func (r *fakeNotificationRepo) GetNotificationByID(ctx context.Context, id string) (*entity.Notification, error) {
	for _, n := range r.all() {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, errors.New("notification not found")
}

func (r *fakeNotificationRepo) ListNotifications(ctx context.Context, filter *contract.NotificationFilter) ([]*entity.Notification, int64, error) {
	var out []*entity.Notification
	for _, n := range r.all() {
		if n.Receiver != filter.Receiver {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, receiver string) (int64, error) {
	var count int64
	for _, n := range r.all() {
		if n.Receiver == receiver && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, n := range r.all() {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return errors.New("notification not found")
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, receiver string) error {
	for _, n := range r.all() {
		if n.Receiver == receiver {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(ctx context.Context, id string) error {
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) ListUsers(ctx context.Context, filter *contract.UserFilter) ([]*entity.User, int64, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) GetAdmins(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.IsAdmin() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, errors.New("user not found")
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hashedPassword
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return errors.New("user not found")
	}
	delete(r.users, id)
	return nil
}

type fakeLeadRepo struct {
	leads map[string]*entity.Lead
}

func newFakeLeadRepo(leads ...*entity.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: make(map[string]*entity.Lead)}
	for _, l := range leads {
		r.leads[l.ID] = l
	}
	return r
}

func (r *fakeLeadRepo) CreateLead(ctx context.Context, lead *entity.Lead) error {
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) GetLeadByID(ctx context.Context, id string) (*entity.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, errors.New("lead not found")
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLeadRepo) ListLeads(ctx context.Context, filter *contract.LeadFilter) ([]*entity.Lead, int64, error) {
	var out []*entity.Lead
	for _, l := range r.leads {
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeadRepo) UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error {
	l, ok := r.leads[id]
	if !ok {
		return errors.New("lead not found")
	}
	for k, v := range updates {
		switch k {
		case "title":
			l.Title = v.(string)
		case "contact_name":
			l.ContactName = v.(string)
		case "email":
			l.Email = v.(string)
		case "phone":
			l.Phone = v.(string)
		case "source":
			l.Source = v.(string)
		case "value":
			l.Value = v.(float64)
		case "stage":
			l.Stage = entity.LeadStage(v.(string))
		case "assigned_to":
			l.AssignedTo = v.(string)
		case "updated_at":
			l.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *fakeLeadRepo) DeleteLead(ctx context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return errors.New("lead not found")
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) CountLeads(ctx context.Context, scope *string) (int64, error) {
	return int64(len(r.leads)), nil
}

func (r *fakeLeadRepo) CountByStage(ctx context.Context, scope *string) ([]contract.StageCount, error) {
	counts := make(map[string]int64)
	for _, l := range r.leads {
		counts[string(l.Stage)]++
	}
	var out []contract.StageCount
	for stage, count := range counts {
		out = append(out, contract.StageCount{Stage: stage, Count: count})
	}
	return out, nil
}

func (r *fakeLeadRepo) CountBySource(ctx context.Context, scope *string) ([]contract.SourceCount, error) {
	return nil, nil
}

func (r *fakeLeadRepo) CountByMonth(ctx context.Context, scope *string, year int) ([]contract.MonthCount, error) {
	return nil, nil
}

func (r *fakeLeadRepo) CountCreatedBetween(ctx context.Context, scope *string, from, to time.Time) (int64, error) {
	var count int64
	for _, l := range r.leads {
		if !l.CreatedAt.Before(from) && l.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLeadRepo) CountWonBetween(ctx context.Context, scope *string, from, to time.Time) (int64, error) {
	var count int64
	for _, l := range r.leads {
		if l.Stage == entity.LeadStageWon && !l.UpdatedAt.Before(from) && l.UpdatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

type fakeNoteRepo struct {
	notes map[string]*entity.Note
}

func newFakeNoteRepo(notes ...*entity.Note) *fakeNoteRepo {
	r := &fakeNoteRepo{notes: make(map[string]*entity.Note)}
	for _, n := range notes {
		r.notes[n.ID] = n
	}
	return r
}

func (r *fakeNoteRepo) CreateNote(ctx context.Context, note *entity.Note) error {
	r.notes[note.ID] = note
	return nil
}

func (r *fakeNoteRepo) GetNoteByID(ctx context.Context, id string) (*entity.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, errors.New("note not found")
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNoteRepo) ListNotes(ctx context.Context, filter *contract.NoteFilter) ([]*entity.Note, int64, error) {
	var out []*entity.Note
	for _, n := range r.notes {
		if filter.Scope != nil && n.CreatedBy != *filter.Scope {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNoteRepo) UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error {
	n, ok := r.notes[id]
	if !ok {
		return errors.New("note not found")
	}
	for k, v := range updates {
		switch k {
		case "title":
			n.Title = v.(string)
		case "content":
			n.Content = v.(string)
		case "tags":
			n.Tags = v.([]string)
		case "updated_at":
			n.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *fakeNoteRepo) DeleteNote(ctx context.Context, id string) error {
	if _, ok := r.notes[id]; !ok {
		return errors.New("note not found")
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) SetPinned(ctx context.Context, id, userID string, pinned bool) error {
	n, ok := r.notes[id]
	if !ok {
		return errors.New("note not found")
	}
	if pinned {
		if !n.IsPinnedBy(userID) {
			n.PinnedBy = append(n.PinnedBy, userID)
		}
		return nil
	}
	kept := n.PinnedBy[:0]
	for _, uid := range n.PinnedBy {
		if uid != userID {
			kept = append(kept, uid)
		}
	}
	n.PinnedBy = kept
	return nil
}

func (r *fakeNoteRepo) CountNotes(ctx context.Context, scope *string) (int64, error) {
	return int64(len(r.notes)), nil
}

type stubClientRepo struct{ total int64 }

func (r *stubClientRepo) CreateClient(ctx context.Context, client *entity.Client) error { return nil }
func (r *stubClientRepo) GetClientByID(ctx context.Context, id string) (*entity.Client, error) {
	return nil, errors.New("client not found")
}
func (r *stubClientRepo) ListClients(ctx context.Context, filter *contract.ClientFilter) ([]*entity.Client, int64, error) {
	return nil, 0, nil
}
func (r *stubClientRepo) UpdateClient(ctx context.Context, id string, updates map[string]interface{}) error {
	return nil
}
func (r *stubClientRepo) DeleteClient(ctx context.Context, id string) error { return nil }
func (r *stubClientRepo) CountClients(ctx context.Context, scope *string) (int64, error) {
	return r.total, nil
}

type stubTaskRepo struct {
	total    int64
	byStatus []contract.StatusCount
}

func (r *stubTaskRepo) CreateTask(ctx context.Context, task *entity.Task) error { return nil }
func (r *stubTaskRepo) GetTaskByID(ctx context.Context, id string) (*entity.Task, error) {
	return nil, errors.New("task not found")
}
func (r *stubTaskRepo) ListTasks(ctx context.Context, filter *contract.TaskFilter) ([]*entity.Task, int64, error) {
	return nil, 0, nil
}
func (r *stubTaskRepo) UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error {
	return nil
}
func (r *stubTaskRepo) DeleteTask(ctx context.Context, id string) error { return nil }
func (r *stubTaskRepo) CountTasks(ctx context.Context, scope *string) (int64, error) {
	return r.total, nil
}
func (r *stubTaskRepo) CountByStatus(ctx context.Context, scope *string) ([]contract.StatusCount, error) {
	return r.byStatus, nil
}

type nopLeadCache struct{}

func (nopLeadCache) GetLeadsPage(ctx context.Context, key string) (*contract.CachedLeadsPage, bool, error) {
	return nil, false, nil
}

func (nopLeadCache) SetLeadsPage(ctx context.Context, key string, page *contract.CachedLeadsPage) error {
	return nil
}

func (nopLeadCache) InvalidateLeadLists(ctx context.Context) error { return nil }
