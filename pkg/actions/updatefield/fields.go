package updatefield

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
)

// setter applies value to one field and returns the value as stored.
type setter[T any] func(entity T, value string, now time.Time) (any, error)

// target is an entity type whose fields can be updated by workflows.
type target interface {
	Name() string
	Fields() []string
	Supports(field string) bool
	Update(ctx context.Context, uow persistence.UnitOfWork, scope tenantScope, field, value string, now time.Time) (any, error)
}

// tenantScope identifies the record to update. When hasTenant is set, records
// of other tenants are reported as not found.
type tenantScope struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	hasTenant bool
}

type entityTarget[T any] struct {
	name       string
	repository func(persistence.UnitOfWork) persistence.Repository[T]
	tenant     func(T) uuid.UUID
	setters    map[string]setter[T]
}

func (e *entityTarget[T]) Name() string { return e.name }

func (e *entityTarget[T]) Fields() []string {
	return slices.Sorted(maps.Keys(e.setters))
}

func (e *entityTarget[T]) Supports(field string) bool {
	_, ok := e.setters[field]

	return ok
}

func (e *entityTarget[T]) Update(
	ctx context.Context,
	uow persistence.UnitOfWork,
	scope tenantScope,
	field, value string,
	now time.Time,
) (any, error) {
	repository := e.repository(uow)

	entity, err := repository.Get(ctx, scope.id)
	if err != nil {
		return nil, err
	}

	if scope.hasTenant && e.tenant(entity) != scope.tenantID {
		return nil, persistence.NewEntityError("Update", strings.ToLower(e.name), scope.id, persistence.ErrNotFound)
	}

	newValue, err := e.setters[field](entity, value, now)
	if err != nil {
		return nil, err
	}

	if err := repository.Update(ctx, entity); err != nil {
		return nil, err
	}

	return newValue, nil
}

var targets = map[string]target{
	"lead": &entityTarget[*crm.Lead]{
		name:       "Lead",
		repository: persistence.UnitOfWork.Leads,
		tenant:     func(lead *crm.Lead) uuid.UUID { return lead.TenantID },
		setters: map[string]setter[*crm.Lead]{
			"status": func(lead *crm.Lead, value string, now time.Time) (any, error) {
				status, err := crm.ParseLeadStatus(value)
				if err != nil {
					return nil, err
				}

				return string(status), lead.UpdateStatus(status, now)
			},
			"rating": func(lead *crm.Lead, value string, now time.Time) (any, error) {
				rating, err := crm.ParseLeadRating(value)
				if err != nil {
					return nil, err
				}

				return string(rating), lead.UpdateRating(rating, now)
			},
			"score": func(lead *crm.Lead, value string, now time.Time) (any, error) {
				score, err := strconv.Atoi(strings.TrimSpace(value))
				if err != nil {
					return nil, fmt.Errorf("%w: score %q is not an integer", crm.ErrInvalidInput, value)
				}

				return score, lead.UpdateScore(score, now)
			},
			"description": func(lead *crm.Lead, value string, now time.Time) (any, error) {
				return value, lead.UpdateDescription(value, now)
			},
		},
	},
	"contact": &entityTarget[*crm.Contact]{
		name:       "Contact",
		repository: persistence.UnitOfWork.Contacts,
		tenant:     func(contact *crm.Contact) uuid.UUID { return contact.TenantID },
		setters: map[string]setter[*crm.Contact]{
			"notes": func(contact *crm.Contact, value string, now time.Time) (any, error) {
				return value, contact.UpdateNotes(value, now)
			},
		},
	},
}

func supportedTargets() []string {
	return slices.Sorted(maps.Keys(targets))
}
