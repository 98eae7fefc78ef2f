package file

import (
	"context"
	"fmt"

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

// SaveChanges writes the staged records one file at a time. It is not atomic:
// when a write fails, records already written stay on disk and the unit of
// work is closed so a retry cannot write them twice.
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

	u.closed = true

	for _, flush := range []func() error{u.tasks.flush, u.leads.flush, u.contacts.flush} {
		if err := flush(); err != nil {
			return err
		}
	}

	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	u.closed = true

	return nil
}

// repository stages changes in memory until SaveChanges writes them. T must
// be a pointer so fresh values can be decoded into.
type repository[T any] struct {
	store    *Store
	dir      string
	entity   string
	id       func(T) uuid.UUID
	fresh    func() T
	staged   map[uuid.UUID]T
	inserted map[uuid.UUID]struct{}
}

func newRepository[T any](store *Store, dir, entity string, id func(T) uuid.UUID, fresh func() T) *repository[T] {
	return &repository[T]{
		store:    store,
		dir:      dir,
		entity:   entity,
		id:       id,
		fresh:    fresh,
		staged:   make(map[uuid.UUID]T),
		inserted: make(map[uuid.UUID]struct{}),
	}
}

func (r *repository[T]) Add(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := r.id(entity)

	if _, staged := r.inserted[id]; staged || r.persisted(id) {
		return persistence.NewEntityError("Add", r.entity, id, persistence.ErrAlreadyExists)
	}

	r.staged[id] = entity
	r.inserted[id] = struct{}{}

	return nil
}

func (r *repository[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var entity T

	if err := ctx.Err(); err != nil {
		return entity, err
	}

	if staged, ok := r.staged[id]; ok {
		return staged, nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	fresh := r.fresh()
	if err := r.store.read(r.dir, r.entity, id, fresh); err != nil {
		return entity, err
	}

	return fresh, nil
}

func (r *repository[T]) Update(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := r.id(entity)

	if _, staged := r.staged[id]; !staged && !r.persisted(id) {
		return persistence.NewEntityError("Update", r.entity, id, persistence.ErrNotFound)
	}

	r.staged[id] = entity

	return nil
}

func (r *repository[T]) persisted(id uuid.UUID) bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.exists(r.dir, id)
}

// conflicts and flush run under the store write lock.
func (r *repository[T]) conflicts() error {
	for id := range r.inserted {
		if r.store.exists(r.dir, id) {
			return persistence.NewEntityError("SaveChanges", r.entity, id, persistence.ErrAlreadyExists)
		}
	}

	return nil
}

func (r *repository[T]) flush() error {
	for id, entity := range r.staged {
		if err := r.store.write(r.dir, r.entity, id, entity); err != nil {
			return fmt.Errorf("failed to save changes: %w", err)
		}

		r.store.logger.Debug("Record saved", "entity", r.entity, "id", id)
	}

	return nil
}
