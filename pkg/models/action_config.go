package models

// Configuration records are decoded from a step's JSON configuration. The
// validate tags are checked after template interpolation.

// TaskConfig configures a CreateTask step.
type TaskConfig struct {
	Subject            string   `json:"subject" validate:"required"`
	Description        string   `json:"description,omitempty"`
	TenantID           string   `json:"tenantId,omitempty"`
	OwnerID            string   `json:"ownerId,omitempty"`
	AssigneeIDs        []string `json:"assigneeIds,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	DueDate            string   `json:"dueDate,omitempty"`
	DueDateDaysFromNow *int     `json:"dueDateDaysFromNow,omitempty"`
}

// EmailConfig configures a SendEmail step.
type EmailConfig struct {
	To           string `json:"to" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
	Body         string `json:"body,omitempty"`
	TemplateName string `json:"templateName,omitempty"`
}

// NotificationConfig configures a SendNotification step.
type NotificationConfig struct {
	Title      string `json:"title" validate:"required"`
	Message    string `json:"message" validate:"required"`
	UserID     string `json:"userId,omitempty"`
	Type       string `json:"type,omitempty"`
	ActionURL  string `json:"actionUrl,omitempty"`
	ActionText string `json:"actionText,omitempty"`
	Icon       string `json:"icon,omitempty"`
}

// UpdateFieldConfig configures an UpdateField step. FieldValue keeps the raw
// JSON value so numbers and strings are both accepted.
type UpdateFieldConfig struct {
	EntityType string `json:"entityType,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
	FieldName  string `json:"fieldName" validate:"required"`
	FieldValue any    `json:"fieldValue"`
}

// WebhookConfig configures a CallWebhook step.
type WebhookConfig struct {
	URL                    string            `json:"url" validate:"required"`
	Method                 string            `json:"method,omitempty"`
	ContentType            string            `json:"contentType,omitempty"`
	Headers                map[string]string `json:"headers,omitempty"`
	BodyTemplate           string            `json:"bodyTemplate,omitempty"`
	IncludeTriggerData     *bool             `json:"includeTriggerData,omitempty"`
	TimeoutSeconds         *int              `json:"timeoutSeconds,omitempty"`
	FailOnNonSuccessStatus *bool             `json:"failOnNonSuccessStatus,omitempty"`
	AuthType               string            `json:"authType,omitempty"`
	AuthToken              string            `json:"authToken,omitempty"`
	AuthUsername           string            `json:"authUsername,omitempty"`
	AuthPassword           string            `json:"authPassword,omitempty"`
	APIKeyHeader           string            `json:"apiKeyHeader,omitempty"`
	APIKeyValue            string            `json:"apiKeyValue,omitempty"`
}
