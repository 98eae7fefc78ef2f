package updatefield

// Schema returns the JSON schema for configuring this action.
func (h *Handler) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entityType": map[string]any{
				"type":        "string",
				"description": "Entity to update. Defaults to the triggering entity type.",
				"examples":    []string{"Lead", "Contact"},
			},
			"entityId": map[string]any{
				"type":        "string",
				"description": "Entity identifier. Defaults to the triggering entity id.",
			},
			"fieldName": map[string]any{
				"type":        "string",
				"description": "Field to set: status, rating, score or description on leads, notes on contacts.",
			},
			"fieldValue": map[string]any{
				"description": "New value. Strings support {{Token}} placeholders.",
				"type":        []string{"string", "number", "boolean"},
			},
		},
		"required": []string{"fieldName", "fieldValue"},
	}
}
