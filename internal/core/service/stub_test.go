package service

import (
	"context"
	"sort"
	"sync"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository for service tests.
type stubUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		effective := u.Role
		if effective == "" {
			effective = domain.DefaultRole
		}
		if effective == role {
			n++
		}
	}
	return n, nil
}

// seed inserts a user directly, bypassing Create.
func (r *stubUserRepo) seed(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	r.users[u.ID] = cloneUser(u)
}

// stubItemRepo is an in-memory ItemRepository.
type stubItemRepo struct {
	mu     sync.Mutex
	items  map[int64]*domain.Item
	nextID int64
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[int64]*domain.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copy := *item
	copy.ID = r.nextID
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.items[id]; ok {
		copy := *i
		return &copy, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubItemRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Item
	for _, i := range r.items {
		if i.OwnerID == ownerID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubItemRepo) ListAll(_ context.Context) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Item
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// nopThrottle always allows logins.
type nopThrottle struct{}

func (nopThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (nopThrottle) RecordFailure(context.Context, string) error { return nil }
func (nopThrottle) Reset(context.Context, string) error         { return nil }

// denyThrottle rejects every login attempt.
type denyThrottle struct{}

func (denyThrottle) Allow(context.Context, string) (bool, error) { return false, nil }
func (denyThrottle) RecordFailure(context.Context, string) error { return nil }
func (denyThrottle) Reset(context.Context, string) error         { return nil }

// recorderStub captures audit events synchronously.
type recorderStub struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recorderStub) Record(event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorderStub) byAction(action string) []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditEvent
	for _, e := range r.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
