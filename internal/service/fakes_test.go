package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/repository/contract"
	"nexus-ems-be/internal/repository/specification"
	"nexus-ems-be/internal/repository/unitofwork"
	"nexus-ems-be/pkg/events"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// fakeEmployeeRepo is an in-memory store. failWrites/failReads simulate an
// unreachable database.
type fakeEmployeeRepo struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]entity.Employee
	failWrites bool
	failReads  bool
	reads      int
}

func newFakeEmployeeRepo(seed ...entity.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{rows: map[uuid.UUID]entity.Employee{}}
	for _, e := range seed {
		if e.Id == uuid.Nil {
			e.Id = uuid.New()
		}
		r.rows[e.Id] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errStoreDown
	}
	e.Id = uuid.New()
	r.rows[e.Id] = *e
	return nil
}

func (r *fakeEmployeeRepo) Replace(_ context.Context, e *entity.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errStoreDown
	}
	if _, ok := r.rows[e.Id]; !ok {
		return contract.ErrNotFound
	}
	r.rows[e.Id] = *e
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return false, errStoreDown
	}
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeEmployeeRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			if e, found := r.rows[byID.ID]; found {
				return &e, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.failReads {
		return nil, errStoreDown
	}
	out := make([]*entity.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// size is the number of stored rows.
func (r *fakeEmployeeRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *fakeEmployeeRepo) set(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uuid.UUID]entity.User
	tokens map[uuid.UUID]entity.UserRefreshToken
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]entity.User{}, tokens: map[uuid.UUID]entity.UserRefreshToken{}}
	for _, u := range users {
		r.users[u.Id] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Id] = *u
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if matchUser(u, specs) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func matchUser(u entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByEmail:
			if u.Email != v.Email {
				return false
			}
		case specification.ByID:
			if u.Id != v.ID {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) CreateRefreshToken(_ context.Context, t *entity.UserRefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.Id] = *t
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(_ context.Context, specs ...specification.Specification) (*entity.UserRefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
outer:
	for _, t := range r.tokens {
		for _, s := range specs {
			switch v := s.(type) {
			case specification.ByTokenHash:
				if t.TokenHash != v.Hash {
					continue outer
				}
			case specification.NotRevoked:
				if t.Revoked {
					continue outer
				}
			}
		}
		t := t
		return &t, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) RevokeRefreshToken(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.tokens[id]
	t.Revoked = true
	r.tokens[id] = t
	return nil
}

type fakeUnitOfWork struct {
	employees *fakeEmployeeRepo
	users     *fakeUserRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error                     { return nil }
func (u *fakeUnitOfWork) Commit() error                                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                                 { return nil }
func (u *fakeUnitOfWork) UserRepository() contract.UserRepository         { return u.users }
func (u *fakeUnitOfWork) EmployeeRepository() contract.EmployeeRepository { return u.employees }

type fakeFactory struct{ uow *fakeUnitOfWork }

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

func newFakeFactory(employees *fakeEmployeeRepo, users *fakeUserRepo) *fakeFactory {
	if employees == nil {
		employees = newFakeEmployeeRepo()
	}
	if users == nil {
		users = newFakeUserRepo()
	}
	return &fakeFactory{uow: &fakeUnitOfWork{employees: employees, users: users}}
}

// recordingNotifier captures toasts instead of delivering them.
type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	failures []string
	all      []string
}

func (n *recordingNotifier) Success(_ uuid.UUID, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, title)
}

func (n *recordingNotifier) Failure(_ uuid.UUID, title string, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, title)
}

func (n *recordingNotifier) FailureAll(title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.all = append(n.all, title)
}

func (n *recordingNotifier) failureCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures) + len(n.all)
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type recordingEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingEventPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingEventPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type recordingSessions struct {
	mu    sync.Mutex
	ended []string
}

func (s *recordingSessions) EndSession(_ uuid.UUID, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, sessionID)
}

type recordingDelivery struct {
	mu   sync.Mutex
	user []dto.NotificationPayload
	all  []dto.NotificationPayload
}

func (d *recordingDelivery) Notify(_ uuid.UUID, n dto.NotificationPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.user = append(d.user, n)
}

func (d *recordingDelivery) NotifyAll(n dto.NotificationPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = append(d.all, n)
}

func specByID(id uuid.UUID) specification.Specification {
	return specification.ByID{ID: id}
}
