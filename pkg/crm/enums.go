package crm

import (
	"fmt"
	"strings"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityNormal TaskPriority = "Normal"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "New"
	LeadStatusContacted   LeadStatus = "Contacted"
	LeadStatusQualified   LeadStatus = "Qualified"
	LeadStatusUnqualified LeadStatus = "Unqualified"
	LeadStatusConverted   LeadStatus = "Converted"
	LeadStatusLost        LeadStatus = "Lost"
)

type LeadRating string

const (
	LeadRatingUnrated LeadRating = "Unrated"
	LeadRatingCold    LeadRating = "Cold"
	LeadRatingWarm    LeadRating = "Warm"
	LeadRatingHot     LeadRating = "Hot"
)

type NotificationType string

const (
	NotificationTypeSystem   NotificationType = "System"
	NotificationTypeDeal     NotificationType = "Deal"
	NotificationTypeCustomer NotificationType = "Customer"
	NotificationTypeTask     NotificationType = "Task"
	NotificationTypeWorkflow NotificationType = "Workflow"
	NotificationTypeMeeting  NotificationType = "Meeting"
	NotificationTypeAlert    NotificationType = "Alert"
	NotificationTypeSuccess  NotificationType = "Success"
)

type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "InApp"
	ChannelEmail NotificationChannel = "Email"
	ChannelSMS   NotificationChannel = "SMS"
	ChannelPush  NotificationChannel = "Push"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "Pending"
	NotificationSent    NotificationStatus = "Sent"
	NotificationFailed  NotificationStatus = "Failed"
)

// RelatedEntityType names the record a task or notification points at.
type RelatedEntityType string

const (
	RelatedAccount     RelatedEntityType = "Account"
	RelatedContact     RelatedEntityType = "Contact"
	RelatedLead        RelatedEntityType = "Lead"
	RelatedDeal        RelatedEntityType = "Deal"
	RelatedOpportunity RelatedEntityType = "Opportunity"
)

var relatedEntityKeywords = map[string]RelatedEntityType{
	"customer":    RelatedAccount,
	"account":     RelatedAccount,
	"contact":     RelatedContact,
	"lead":        RelatedLead,
	"deal":        RelatedDeal,
	"opportunity": RelatedOpportunity,
}

func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

func LeadStatuses() []LeadStatus {
	return []LeadStatus{
		LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusUnqualified, LeadStatusConverted, LeadStatusLost,
	}
}

func LeadRatings() []LeadRating {
	return []LeadRating{LeadRatingUnrated, LeadRatingCold, LeadRatingWarm, LeadRatingHot}
}

func NotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationTypeSystem, NotificationTypeDeal, NotificationTypeCustomer, NotificationTypeTask,
		NotificationTypeWorkflow, NotificationTypeMeeting, NotificationTypeAlert, NotificationTypeSuccess,
	}
}

// ParseTaskPriority matches case-insensitively. An empty value is Normal.
func ParseTaskPriority(value string) (TaskPriority, error) {
	if strings.TrimSpace(value) == "" {
		return PriorityNormal, nil
	}

	return parseEnum(value, TaskPriorities(), "task priority")
}

func ParseLeadStatus(value string) (LeadStatus, error) {
	return parseEnum(value, LeadStatuses(), "lead status")
}

func ParseLeadRating(value string) (LeadRating, error) {
	return parseEnum(value, LeadRatings(), "lead rating")
}

func ParseNotificationType(value string) (NotificationType, error) {
	return parseEnum(value, NotificationTypes(), "notification type")
}

// RelatedEntityTypeFor maps an entity type keyword such as "customer" or
// "Deal" to the related entity it designates.
func RelatedEntityTypeFor(keyword string) (RelatedEntityType, bool) {
	related, ok := relatedEntityKeywords[strings.ToLower(strings.TrimSpace(keyword))]

	return related, ok
}

func parseEnum[T ~string](value string, options []T, what string) (T, error) {
	trimmed := strings.TrimSpace(value)

	for _, option := range options {
		if strings.EqualFold(string(option), trimmed) {
			return option, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidInput, what, value)
}
