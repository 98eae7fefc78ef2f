package sendnotification

// Schema returns the JSON schema for configuring this action.
func (h *Handler) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string", "description": "Notification title. Supports {{Token}} placeholders."},
			"message": map[string]any{"type": "string", "description": "Notification message. Supports {{Token}} placeholders."},
			"userId": map[string]any{
				"type":        "string",
				"description": "Recipient. Defaults to the first identifier among UserId, CreatedBy, UpdatedBy, OwnerId, AssignedTo and WonBy in the trigger data.",
			},
			"type": map[string]any{
				"type":        "string",
				"description": "Notification type (case-insensitive). Unknown values fall back to Workflow.",
				"default":     "Workflow",
				"examples":    []string{"System", "Deal", "Customer", "Task", "Workflow", "Meeting", "Alert", "Success"},
			},
			"actionUrl":  map[string]any{"type": "string", "description": "Link opened from the notification."},
			"actionText": map[string]any{"type": "string", "description": "Label of the notification link."},
			"icon":       map[string]any{"type": "string", "description": "Icon name shown with the notification."},
		},
		"required": []string{"title", "message"},
	}
}
