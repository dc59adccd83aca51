// Package memory is an in-process store with the same semantics as the
// PostgreSQL repository. It backs tests and STORAGE=memory development runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dan9191/tutor-service/internal/models"
	"github.com/Dan9191/tutor-service/internal/repository"
)

// Store keeps every record in maps guarded by a single lock.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]models.User
	payments map[uuid.UUID]models.Payment
	expenses map[uuid.UUID]models.Expense
	groups   map[uuid.UUID]models.Group
	seq      int64
	nowFunc  func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]models.User),
		payments: make(map[uuid.UUID]models.Payment),
		expenses: make(map[uuid.UUID]models.Expense),
		groups:   make(map[uuid.UUID]models.Group),
		nowFunc:  time.Now,
	}
}

// now returns strictly increasing timestamps so creation order survives sorting.
func (s *Store) now() time.Time {
	s.seq++
	return s.nowFunc().UTC().Add(time.Duration(s.seq) * time.Microsecond)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == user.ID || u.Phone == user.Phone || u.Login == user.Login {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByGuestCode(ctx context.Context, code string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.GuestCode != nil && *u.GuestCode == code {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) SetGuestCode(ctx context.Context, id uuid.UUID, code *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if code != nil {
		for _, other := range s.users {
			if other.ID != id && other.GuestCode != nil && *other.GuestCode == *code {
				return repository.ErrDuplicate
			}
		}
		c := *code
		code = &c
	}
	u.GuestCode = code
	s.users[id] = u
	return nil
}

func (s *Store) UpdateSettings(ctx context.Context, id uuid.UUID, reminderDays int, notifyEmail *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ReminderDays = reminderDays
	u.NotifyEmail = notifyEmail
	s.users[id] = u
	return nil
}

func (s *Store) ConfirmUser(ctx context.Context, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Login == login && u.ConfirmedAt == nil {
			now := s.now()
			u.ConfirmedAt = &now
			s.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) ListNotifiableUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []models.User
	for _, u := range s.users {
		if u.NotifyEmail != nil && *u.NotifyEmail != "" && u.ConfirmedAt != nil {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; ok {
		return repository.ErrDuplicate
	}
	p.CreatedAt = s.now()
	s.payments[p.ID] = *p
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.payments[p.ID]
	if !ok || cur.UserID != p.UserID {
		return repository.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	s.payments[p.ID] = *p
	return nil
}

func (s *Store) DeletePayment(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.payments[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *Store) ListPayments(ctx context.Context, userID uuid.UUID, rng models.DateRange) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payments := []models.Payment{}
	for _, p := range s.payments {
		if p.UserID == userID && rng.Contains(p.Date) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].Date != payments[j].Date {
			return payments[i].Date > payments[j].Date
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[e.ID]; ok {
		return repository.ErrDuplicate
	}
	e.CreatedAt = s.now()
	s.expenses[e.ID] = *e
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.expenses[e.ID]
	if !ok || cur.UserID != e.UserID {
		return repository.ErrNotFound
	}
	e.CreatedAt = cur.CreatedAt
	s.expenses[e.ID] = *e
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.expenses[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, userID uuid.UUID, rng models.DateRange) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expenses := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID && rng.Contains(e.Date) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Date != expenses[j].Date {
			return expenses[i].Date > expenses[j].Date
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (s *Store) CreateGroup(ctx context.Context, g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.groups {
		if cur.ID == g.ID || (cur.UserID == g.UserID && cur.Name == g.Name) {
			return repository.ErrDuplicate
		}
	}
	s.groups[g.ID] = *g
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.groups[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.groups, id)
	return nil
}

func (s *Store) ListGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := []models.Group{}
	for _, g := range s.groups {
		if g.UserID == userID {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}
