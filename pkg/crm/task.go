package crm

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxSubjectLength = 200

// Task is a follow-up activity owned by a user.
type Task struct {
	ID                uuid.UUID         `json:"id"`
	TenantID          uuid.UUID         `json:"tenantId"`
	Subject           string            `json:"subject"`
	Description       string            `json:"description,omitempty"`
	Priority          TaskPriority      `json:"priority"`
	OwnerID           uuid.UUID         `json:"ownerId"`
	AssigneeIDs       []uuid.UUID       `json:"assigneeIds,omitempty"`
	DueDate           *time.Time        `json:"dueDate,omitempty"`
	RelatedEntityType RelatedEntityType `json:"relatedEntityType,omitempty"`
	RelatedEntityID   string            `json:"relatedEntityId,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// NewTask validates its input and returns a task with a fresh id.
// An empty priority defaults to Normal.
func NewTask(
	tenantID, ownerID uuid.UUID,
	subject, description, priority string,
	dueDate *time.Time,
	now time.Time,
) (*Task, error) {
	subject = strings.TrimSpace(subject)

	switch {
	case tenantID == uuid.Nil:
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	case ownerID == uuid.Nil:
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	case subject == "":
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	case len([]rune(subject)) > maxSubjectLength:
		return nil, fmt.Errorf("%w: subject exceeds %d characters", ErrInvalidInput, maxSubjectLength)
	}

	parsedPriority, err := ParseTaskPriority(priority)
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Subject:     subject,
		Description: description,
		Priority:    parsedPriority,
		OwnerID:     ownerID,
		DueDate:     dueDate,
		CreatedAt:   now.UTC(),
	}, nil
}

func (t *Task) RelateTo(entityType RelatedEntityType, entityID string) {
	t.RelatedEntityType = entityType
	t.RelatedEntityID = entityID
}

// AssignUsers adds assignees, skipping nil ids and duplicates.
func (t *Task) AssignUsers(userIDs ...uuid.UUID) {
	for _, id := range userIDs {
		if id == uuid.Nil || slices.Contains(t.AssigneeIDs, id) {
			continue
		}

		t.AssigneeIDs = append(t.AssigneeIDs, id)
	}
}

func (t *Task) Clone() *Task {
	c := *t
	c.AssigneeIDs = slices.Clone(t.AssigneeIDs)

	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}

	return &c
}
