// Package memstore хранилище в памяти. Реализует те же интерфейсы,
// что и pgx-репозитории, и подставляется вместо них в тестах и при
// локальной разработке без базы.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bridges-advising/scheduler/internal/model"
)

type Store struct {
	mu sync.Mutex

	users          map[int64]model.User
	subjects       map[int64]model.Subject
	expertise      map[int64]model.StaffExpertise
	studentSubject map[int64]model.StudentSubject
	availability   map[int64]model.Availability
	meetings       map[int64]model.Meeting
	conflicts      map[int64]model.Conflict
	notifications  map[int64]model.Notification
	activities     map[int64]model.Activity

	nextID map[string]int64
}

func New() *Store {
	return &Store{
		users:          make(map[int64]model.User),
		subjects:       make(map[int64]model.Subject),
		expertise:      make(map[int64]model.StaffExpertise),
		studentSubject: make(map[int64]model.StudentSubject),
		availability:   make(map[int64]model.Availability),
		meetings:       make(map[int64]model.Meeting),
		conflicts:      make(map[int64]model.Conflict),
		notifications:  make(map[int64]model.Notification),
		activities:     make(map[int64]model.Activity),
		nextID:         make(map[string]int64),
	}
}

func (s *Store) next(entity string) int64 {
	s.nextID[entity]++
	return s.nextID[entity]
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// --- пользователи ---

func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.next("user")
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *Store) ListByRole(_ context.Context, role model.UserRole) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.User
	for id := int64(1); id <= s.nextID["user"]; id++ {
		if user, ok := s.users[id]; ok && user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *Store) ListStaff(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.User
	for id := int64(1); id <= s.nextID["user"]; id++ {
		if user, ok := s.users[id]; ok && user.IsStaff() {
			users = append(users, user)
		}
	}
	return users, nil
}

// --- предметы ---

func (s *Store) CreateSubject(_ context.Context, subject *model.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject.ID = s.next("subject")
	s.subjects[subject.ID] = *subject
	return nil
}

// --- компетенции и потребности ---

func (s *Store) CreateExpertise(_ context.Context, expertise *model.StaffExpertise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expertise.ID = s.next("expertise")
	s.expertise[expertise.ID] = *expertise
	return nil
}

func (s *Store) List(_ context.Context) ([]model.StaffExpertise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var edges []model.StaffExpertise
	for id := int64(1); id <= s.nextID["expertise"]; id++ {
		if edge, ok := s.expertise[id]; ok {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

func (s *Store) ListByUser(_ context.Context, userID int64) ([]model.StaffExpertise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var edges []model.StaffExpertise
	for id := int64(1); id <= s.nextID["expertise"]; id++ {
		if edge, ok := s.expertise[id]; ok && edge.UserID == userID {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

// NeedStore отдельная обёртка: у потребностей студентов и компетенций
// сотрудников совпадают сигнатуры ListByUser
type NeedStore struct {
	store *Store
}

func (s *Store) Needs() *NeedStore {
	return &NeedStore{store: s}
}

func (s *Store) CreateNeed(_ context.Context, need *model.StudentSubject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	need.ID = s.next("need")
	s.studentSubject[need.ID] = *need
	return nil
}

func (n *NeedStore) ListByUser(_ context.Context, userID int64) ([]model.StudentSubject, error) {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()

	var needs []model.StudentSubject
	for id := int64(1); id <= n.store.nextID["need"]; id++ {
		if need, ok := n.store.studentSubject[id]; ok && need.UserID == userID {
			needs = append(needs, need)
		}
	}
	return needs, nil
}

// AvailabilityView обёртка с ListByUser по окнам доступности
type AvailabilityView struct {
	store *Store
}

func (s *Store) Windows() *AvailabilityView {
	return &AvailabilityView{store: s}
}

func (s *Store) CreateAvailability(_ context.Context, window *model.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	window.ID = s.next("availability")
	window.CreatedAt = time.Now().UTC()
	s.availability[window.ID] = *window
	return nil
}

func (a *AvailabilityView) ListByUser(_ context.Context, userID int64) ([]model.Availability, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	var windows []model.Availability
	for id := int64(1); id <= a.store.nextID["availability"]; id++ {
		if window, ok := a.store.availability[id]; ok && window.UserID == userID {
			windows = append(windows, window)
		}
	}
	return windows, nil
}

// --- встречи ---

type MeetingView struct {
	store *Store
}

func (s *Store) Meetings() *MeetingView {
	return &MeetingView{store: s}
}

func (s *Store) CreateMeeting(_ context.Context, meeting *model.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting.ID = s.next("meeting")
	now := time.Now().UTC()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	s.meetings[meeting.ID] = *meeting
	return nil
}

func (m *MeetingView) GetByID(_ context.Context, id int64) (*model.Meeting, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	meeting, ok := m.store.meetings[id]
	if !ok {
		return nil, nil
	}
	return &meeting, nil
}

func (m *MeetingView) Create(ctx context.Context, meeting *model.Meeting) error {
	return m.store.CreateMeeting(ctx, meeting)
}

func (m *MeetingView) ListOnDateForParticipants(_ context.Context, date time.Time, studentID, staffID int64) ([]model.Meeting, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var meetings []model.Meeting
	for id := int64(1); id <= m.store.nextID["meeting"]; id++ {
		meeting, ok := m.store.meetings[id]
		if !ok || meeting.Status == model.MeetingStatusCancelled {
			continue
		}
		if !sameDay(meeting.Date, date) {
			continue
		}
		if meeting.StudentID != studentID && meeting.StaffID != staffID {
			continue
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

func (m *MeetingView) Update(_ context.Context, meeting *model.Meeting) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.meetings[meeting.ID]; !ok {
		return fmt.Errorf("meeting not found")
	}
	meeting.UpdatedAt = time.Now().UTC()
	m.store.meetings[meeting.ID] = *meeting
	return nil
}

func (m *MeetingView) UpdateStatus(_ context.Context, id int64, status model.MeetingStatus) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	meeting, ok := m.store.meetings[id]
	if !ok {
		return fmt.Errorf("meeting not found")
	}
	meeting.Status = status
	meeting.UpdatedAt = time.Now().UTC()
	m.store.meetings[id] = meeting
	return nil
}

func (m *MeetingView) ListScheduledFrom(_ context.Context, from time.Time) ([]model.Meeting, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var meetings []model.Meeting
	for id := int64(1); id <= m.store.nextID["meeting"]; id++ {
		meeting, ok := m.store.meetings[id]
		if !ok || meeting.Status != model.MeetingStatusScheduled {
			continue
		}
		if meeting.Date.Before(from) {
			continue
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

// --- конфликты ---

type ConflictView struct {
	store *Store
}

func (s *Store) Conflicts() *ConflictView {
	return &ConflictView{store: s}
}

func (c *ConflictView) Create(_ context.Context, conflict *model.Conflict) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	conflict.ID = c.store.next("conflict")
	conflict.CreatedAt = time.Now().UTC()
	c.store.conflicts[conflict.ID] = *conflict
	return nil
}

func (c *ConflictView) GetByID(_ context.Context, id int64) (*model.Conflict, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	conflict, ok := c.store.conflicts[id]
	if !ok {
		return nil, nil
	}
	return &conflict, nil
}

func (c *ConflictView) List(_ context.Context, status model.ConflictStatus) ([]model.Conflict, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var conflicts []model.Conflict
	for id := int64(1); id <= c.store.nextID["conflict"]; id++ {
		conflict, ok := c.store.conflicts[id]
		if !ok {
			continue
		}
		if status != "" && conflict.Status != status {
			continue
		}
		conflicts = append(conflicts, conflict)
	}
	return conflicts, nil
}

func (c *ConflictView) SetAssignee(_ context.Context, id, staffID int64) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	conflict, ok := c.store.conflicts[id]
	if !ok {
		return fmt.Errorf("conflict not found")
	}
	conflict.AssignedToID = &staffID
	c.store.conflicts[id] = conflict
	return nil
}

func (c *ConflictView) MarkResolved(_ context.Context, id, resolverID int64, at time.Time) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	conflict, ok := c.store.conflicts[id]
	if !ok {
		return fmt.Errorf("conflict not found")
	}
	conflict.Status = model.ConflictStatusResolved
	conflict.ResolvedByID = &resolverID
	conflict.ResolvedAt = &at
	c.store.conflicts[id] = conflict
	return nil
}

func (c *ConflictView) ExistsOpenForMeeting(_ context.Context, meetingID int64) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, conflict := range c.store.conflicts {
		if conflict.Status != model.ConflictStatusOpen {
			continue
		}
		if conflict.RelatedMeetingID != nil && *conflict.RelatedMeetingID == meetingID {
			return true, nil
		}
	}
	return false, nil
}

// --- уведомления и журнал ---

type NotificationView struct {
	store *Store
}

func (s *Store) Notifications() *NotificationView {
	return &NotificationView{store: s}
}

func (n *NotificationView) Create(_ context.Context, notification *model.Notification) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()

	notification.ID = n.store.next("notification")
	notification.CreatedAt = time.Now().UTC()
	n.store.notifications[notification.ID] = *notification
	return nil
}

// All возвращает все уведомления в порядке создания
func (n *NotificationView) All() []model.Notification {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()

	var notifications []model.Notification
	for id := int64(1); id <= n.store.nextID["notification"]; id++ {
		if notification, ok := n.store.notifications[id]; ok {
			notifications = append(notifications, notification)
		}
	}
	return notifications
}

type ActivityView struct {
	store *Store
}

func (s *Store) Activities() *ActivityView {
	return &ActivityView{store: s}
}

func (a *ActivityView) Create(_ context.Context, activity *model.Activity) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	activity.ID = a.store.next("activity")
	activity.CreatedAt = time.Now().UTC()
	a.store.activities[activity.ID] = *activity
	return nil
}

// All возвращает записи журнала в порядке создания
func (a *ActivityView) All() []model.Activity {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	var activities []model.Activity
	for id := int64(1); id <= a.store.nextID["activity"]; id++ {
		if activity, ok := a.store.activities[id]; ok {
			activities = append(activities, activity)
		}
	}
	return activities
}
