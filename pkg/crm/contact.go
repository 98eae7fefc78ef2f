package crm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const maxContactNotesLength = 1000

type Contact struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenantId"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func NewContact(tenantID uuid.UUID, firstName, lastName, email string, now time.Time) (*Contact, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	if firstName == "" && lastName == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}

	return &Contact{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		CreatedAt: now.UTC(),
	}, nil
}

func (c *Contact) UpdateNotes(notes string, now time.Time) error {
	if len([]rune(notes)) > maxContactNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, maxContactNotesLength)
	}

	c.Notes = notes
	updated := now.UTC()
	c.UpdatedAt = &updated

	return nil
}

func (c *Contact) Clone() *Contact {
	clone := *c
	if c.UpdatedAt != nil {
		updated := *c.UpdatedAt
		clone.UpdatedAt = &updated
	}

	return &clone
}
