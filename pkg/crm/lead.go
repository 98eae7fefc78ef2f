package crm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	maxLeadDescriptionLength = 2000
	maxLeadScore             = 100
)

type Lead struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenantId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CompanyName string     `json:"companyName,omitempty"`
	Email       string     `json:"email,omitempty"`
	Status      LeadStatus `json:"status"`
	Rating      LeadRating `json:"rating"`
	Score       int        `json:"score"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func NewLead(tenantID uuid.UUID, firstName, lastName, email string, now time.Time) (*Lead, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}

	if firstName == "" && lastName == "" {
		return nil, fmt.Errorf("%w: lead name is required", ErrInvalidInput)
	}

	return &Lead{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Status:    LeadStatusNew,
		Rating:    LeadRatingUnrated,
		CreatedAt: now.UTC(),
	}, nil
}

// UpdateStatus changes the status. A converted lead keeps its status.
func (l *Lead) UpdateStatus(status LeadStatus, now time.Time) error {
	if _, err := ParseLeadStatus(string(status)); err != nil {
		return err
	}

	if l.Status == LeadStatusConverted && status != LeadStatusConverted {
		return fmt.Errorf("%w: converted lead cannot move to %s", ErrInvalidTransition, status)
	}

	l.Status = status
	l.touch(now)

	return nil
}

func (l *Lead) UpdateRating(rating LeadRating, now time.Time) error {
	if _, err := ParseLeadRating(string(rating)); err != nil {
		return err
	}

	l.Rating = rating
	l.touch(now)

	return nil
}

func (l *Lead) UpdateScore(score int, now time.Time) error {
	if score < 0 || score > maxLeadScore {
		return fmt.Errorf("%w: score must be between 0 and %d", ErrInvalidInput, maxLeadScore)
	}

	l.Score = score
	l.touch(now)

	return nil
}

func (l *Lead) UpdateDescription(description string, now time.Time) error {
	if len([]rune(description)) > maxLeadDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxLeadDescriptionLength)
	}

	l.Description = description
	l.touch(now)

	return nil
}

func (l *Lead) Clone() *Lead {
	c := *l
	if l.UpdatedAt != nil {
		updated := *l.UpdatedAt
		c.UpdatedAt = &updated
	}

	return &c
}

func (l *Lead) touch(now time.Time) {
	updated := now.UTC()
	l.UpdatedAt = &updated
}
