package crm_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

func TestNewTask(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	ownerID := uuid.New()

	tests := []struct {
		name             string
		tenantID         uuid.UUID
		ownerID          uuid.UUID
		subject          string
		priority         string
		expectedPriority crm.TaskPriority
		wantErr          bool
	}{
		{name: "default priority", tenantID: tenantID, ownerID: ownerID, subject: "Call back", expectedPriority: crm.PriorityNormal},
		{name: "case insensitive priority", tenantID: tenantID, ownerID: ownerID, subject: "Call back", priority: "hIgH", expectedPriority: crm.PriorityHigh},
		{name: "invalid priority", tenantID: tenantID, ownerID: ownerID, subject: "Call back", priority: "Whenever", wantErr: true},
		{name: "missing subject", tenantID: tenantID, ownerID: ownerID, subject: "  ", wantErr: true},
		{name: "missing owner", tenantID: tenantID, subject: "Call back", wantErr: true},
		{name: "missing tenant", ownerID: ownerID, subject: "Call back", wantErr: true},
		{name: "subject too long", tenantID: tenantID, ownerID: ownerID, subject: strings.Repeat("a", 201), wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			task, err := crm.NewTask(testCase.tenantID, testCase.ownerID, testCase.subject, "", testCase.priority, nil, now)
			if testCase.wantErr {
				require.ErrorIs(t, err, crm.ErrInvalidInput)
				assert.Nil(t, task)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, task.ID)
			assert.Equal(t, testCase.expectedPriority, task.Priority)
			assert.Equal(t, now, task.CreatedAt)
		})
	}
}

func TestTask_AssignUsersAndClone(t *testing.T) {
	t.Parallel()

	task, err := crm.NewTask(uuid.New(), uuid.New(), "Review", "", "", nil, now)
	require.NoError(t, err)

	first, second := uuid.New(), uuid.New()
	task.AssignUsers(first, uuid.Nil, second, first)
	task.RelateTo(crm.RelatedDeal, "42")

	assert.Equal(t, []uuid.UUID{first, second}, task.AssigneeIDs)
	assert.Equal(t, crm.RelatedDeal, task.RelatedEntityType)

	clone := task.Clone()
	clone.AssigneeIDs[0] = uuid.New()

	assert.Equal(t, first, task.AssigneeIDs[0])
}

func TestRelatedEntityTypeFor(t *testing.T) {
	t.Parallel()

	tests := map[string]crm.RelatedEntityType{
		"customer":    crm.RelatedAccount,
		"Account":     crm.RelatedAccount,
		"CONTACT":     crm.RelatedContact,
		"lead":        crm.RelatedLead,
		"Deal":        crm.RelatedDeal,
		"opportunity": crm.RelatedOpportunity,
	}

	for keyword, expected := range tests {
		actual, ok := crm.RelatedEntityTypeFor(keyword)
		assert.True(t, ok, keyword)
		assert.Equal(t, expected, actual, keyword)
	}

	_, ok := crm.RelatedEntityTypeFor("invoice")
	assert.False(t, ok)
}

func TestLead_UpdateStatus(t *testing.T) {
	t.Parallel()

	lead, err := crm.NewLead(uuid.New(), "Grace", "Hopper", "grace@example.com", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)

	require.NoError(t, lead.UpdateStatus(crm.LeadStatusQualified, later))
	assert.Equal(t, crm.LeadStatusQualified, lead.Status)
	assert.Equal(t, crm.LeadRatingUnrated, lead.Rating)
	require.NotNil(t, lead.UpdatedAt)
	assert.Equal(t, later, *lead.UpdatedAt)

	require.ErrorIs(t, lead.UpdateStatus("Maybe", later), crm.ErrInvalidInput)

	require.NoError(t, lead.UpdateStatus(crm.LeadStatusConverted, later))
	require.ErrorIs(t, lead.UpdateStatus(crm.LeadStatusLost, later), crm.ErrInvalidTransition)
	assert.Equal(t, crm.LeadStatusConverted, lead.Status)
}

func TestLead_FieldValidation(t *testing.T) {
	t.Parallel()

	lead, err := crm.NewLead(uuid.New(), "Alan", "", "", now)
	require.NoError(t, err)

	require.NoError(t, lead.UpdateScore(100, now))
	require.ErrorIs(t, lead.UpdateScore(101, now), crm.ErrInvalidInput)
	require.ErrorIs(t, lead.UpdateScore(-1, now), crm.ErrInvalidInput)
	assert.Equal(t, 100, lead.Score)

	require.NoError(t, lead.UpdateRating(crm.LeadRatingHot, now))
	require.ErrorIs(t, lead.UpdateRating("Lukewarm", now), crm.ErrInvalidInput)
	assert.Equal(t, crm.LeadRatingHot, lead.Rating)

	require.NoError(t, lead.UpdateDescription(strings.Repeat("d", 2000), now))
	require.ErrorIs(t, lead.UpdateDescription(strings.Repeat("d", 2001), now), crm.ErrInvalidInput)
}

func TestContact_UpdateNotes(t *testing.T) {
	t.Parallel()

	contact, err := crm.NewContact(uuid.New(), "Ada", "Lovelace", "", now)
	require.NoError(t, err)

	require.NoError(t, contact.UpdateNotes("met at conference", now))
	assert.Equal(t, "met at conference", contact.Notes)
	require.ErrorIs(t, contact.UpdateNotes(strings.Repeat("n", 1001), now), crm.ErrInvalidInput)
	assert.Equal(t, "met at conference", contact.Notes)
}

func TestNotification_MarkAsSent(t *testing.T) {
	t.Parallel()

	notification, err := crm.NewNotification(uuid.New(), uuid.New(), "Deal won", "Acme signed", crm.NotificationTypeDeal, crm.ChannelInApp, now)
	require.NoError(t, err)
	assert.Equal(t, crm.NotificationPending, notification.Status)
	assert.Nil(t, notification.SentAt)

	require.NoError(t, notification.MarkAsSent(now))
	assert.Equal(t, crm.NotificationSent, notification.Status)
	require.NotNil(t, notification.SentAt)

	require.ErrorIs(t, notification.MarkAsSent(now), crm.ErrInvalidTransition)
}

func TestNewNotification_Validation(t *testing.T) {
	t.Parallel()

	_, err := crm.NewNotification(uuid.Nil, uuid.New(), "t", "m", crm.NotificationTypeSystem, crm.ChannelInApp, now)
	require.ErrorIs(t, err, crm.ErrInvalidInput)

	_, err = crm.NewNotification(uuid.New(), uuid.New(), "t", " ", crm.NotificationTypeSystem, crm.ChannelInApp, now)
	require.ErrorIs(t, err, crm.ErrInvalidInput)
}

func TestParseNotificationType(t *testing.T) {
	t.Parallel()

	parsed, err := crm.ParseNotificationType("meeting")
	require.NoError(t, err)
	assert.Equal(t, crm.NotificationTypeMeeting, parsed)

	_, err = crm.ParseNotificationType("")
	require.ErrorIs(t, err, crm.ErrInvalidInput)
}
