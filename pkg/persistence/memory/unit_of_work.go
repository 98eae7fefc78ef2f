package memory

import (
	"context"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
)

type unitOfWork struct {
	store     *Store
	tenantID  uuid.UUID
	hasTenant bool
	closed    bool

	tasks    *repository[*crm.Task]
	leads    *repository[*crm.Lead]
	contacts *repository[*crm.Contact]
}

func (u *unitOfWork) Tasks() persistence.Repository[*crm.Task] { return u.tasks }
func (u *unitOfWork) Leads() persistence.Repository[*crm.Lead] { return u.leads }
func (u *unitOfWork) Contacts() persistence.Repository[*crm.Contact] { return u.contacts }

func (u *unitOfWork) CurrentTenant() (uuid.UUID, bool) {
	return u.tenantID, u.hasTenant
}

func (u *unitOfWork) SaveChanges(ctx context.Context) error {
	if u.closed {
		return persistence.ErrUnitOfWorkClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, check := range []func() error{u.tasks.conflicts, u.leads.conflicts, u.contacts.conflicts} {
		if err := check(); err != nil {
			return err
		}
	}

	staged := u.tasks.flush() + u.leads.flush() + u.contacts.flush()
	u.closed = true

	u.store.logger.DebugContext(ctx, "Unit of work committed", "changes", staged)

	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	u.closed = true

	return nil
}

type repository[T any] struct {
	store    *Store
	rows     map[uuid.UUID]T
	staged   map[uuid.UUID]T
	inserted map[uuid.UUID]struct{}
	entity   string
	id       func(T) uuid.UUID
	clone    func(T) T
}

func newRepository[T any](store *Store, rows map[uuid.UUID]T, entity string, id func(T) uuid.UUID, clone func(T) T) *repository[T] {
	return &repository[T]{
		store:    store,
		rows:     rows,
		staged:   make(map[uuid.UUID]T),
		inserted: make(map[uuid.UUID]struct{}),
		entity:   entity,
		id:       id,
		clone:    clone,
	}
}

func (r *repository[T]) Add(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := r.id(entity)
	if r.exists(id) {
		return persistence.NewEntityError("Add", r.entity, id, persistence.ErrAlreadyExists)
	}

	r.staged[id] = r.clone(entity)
	r.inserted[id] = struct{}{}

	return nil
}

func (r *repository[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if entity, ok := r.staged[id]; ok {
		return r.clone(entity), nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entity, ok := r.rows[id]
	if !ok {
		return zero, persistence.NewEntityError("Get", r.entity, id, persistence.ErrNotFound)
	}

	return r.clone(entity), nil
}

func (r *repository[T]) Update(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := r.id(entity)
	if !r.exists(id) {
		return persistence.NewEntityError("Update", r.entity, id, persistence.ErrNotFound)
	}

	r.staged[id] = r.clone(entity)

	return nil
}

func (r *repository[T]) exists(id uuid.UUID) bool {
	if _, ok := r.staged[id]; ok {
		return true
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.rows[id]

	return ok
}

// conflicts and flush run with the store lock held.
func (r *repository[T]) conflicts() error {
	for id := range r.inserted {
		if _, ok := r.rows[id]; ok {
			return persistence.NewEntityError("Add", r.entity, id, persistence.ErrAlreadyExists)
		}
	}

	return nil
}

func (r *repository[T]) flush() int {
	for id, entity := range r.staged {
		r.rows[id] = entity
	}

	n := len(r.staged)
	clear(r.staged)
	clear(r.inserted)

	return n
}
