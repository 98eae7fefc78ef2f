package createtask

// Schema returns the JSON schema for configuring this action.
func (h *Handler) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{
				"type":        "string",
				"description": "Task subject. Supports {{Token}} placeholders.",
				"examples":    []string{"Follow up with {{CompanyName}}"},
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Task description. Supports {{Token}} placeholders.",
			},
			"tenantId": map[string]any{
				"type":        "string",
				"description": "Tenant identifier. Defaults to trigger data TenantId, then the current tenant.",
			},
			"ownerId": map[string]any{
				"type":        "string",
				"description": "Owner identifier. Defaults to the first identifier among OwnerId, CreatedBy, AssignedTo, UserId and WonBy in the trigger data.",
				"examples":    []string{"{{AssignedTo}}"},
			},
			"assigneeIds": map[string]any{
				"type":        "array",
				"description": "Additional assignees. Entries that are not identifiers are ignored.",
				"items":       map[string]any{"type": "string"},
			},
			"priority": map[string]any{
				"type":        "string",
				"description": "Task priority (case-insensitive).",
				"default":     "Normal",
				"examples":    []string{"Low", "Normal", "High", "Urgent"},
			},
			"dueDate": map[string]any{
				"type":        "string",
				"description": "Absolute due date (RFC 3339 or YYYY-MM-DD).",
			},
			"dueDateDaysFromNow": map[string]any{
				"type":        "integer",
				"description": "Due date relative to now, in days. Takes precedence over dueDate.",
			},
		},
		"required": []string{"subject"},
	}
}
