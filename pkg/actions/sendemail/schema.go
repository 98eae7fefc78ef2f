package sendemail

// Schema returns the JSON schema for configuring this action.
func (h *Handler) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"to": map[string]any{
				"type":        "string",
				"description": "Recipient address. Supports {{Token}} placeholders.",
				"examples":    []string{"{{OwnerEmail}}", "sales@example.com"},
			},
			"subject": map[string]any{
				"type":        "string",
				"description": "Email subject. Supports {{Token}} placeholders.",
			},
			"body": map[string]any{
				"type":        "string",
				"format":      "html",
				"description": "HTML body. Supports {{Token}} placeholders.",
			},
			"templateName": map[string]any{
				"type":        "string",
				"description": "Template the mail relay should render, if any.",
			},
		},
		"required": []string{"to", "subject"},
	}
}
