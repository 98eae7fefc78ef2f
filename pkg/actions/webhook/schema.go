package webhook

// Schema returns the JSON schema for configuring this action.
func (h *Handler) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Absolute http or https address. Supports {{Token}} placeholders.",
			},
			"method": map[string]any{
				"type":        "string",
				"description": "HTTP method, case-insensitive. Defaults to POST.",
				"examples":    supportedMethods,
			},
			"contentType": map[string]any{
				"type":        "string",
				"description": "Content-Type of the request body.",
				"default":     DefaultContentType,
			},
			"headers": map[string]any{
				"type":                 "object",
				"description":          "Extra request headers. Values support {{Token}} placeholders.",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"bodyTemplate": map[string]any{
				"type":        "string",
				"description": "Request body sent verbatim after interpolation. A JSON payload describing the step is sent when empty.",
			},
			"includeTriggerData": map[string]any{
				"type":        "boolean",
				"description": "Whether the default payload carries the trigger data.",
				"default":     true,
			},
			"timeoutSeconds": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"description": "Request timeout in seconds.",
				"default":     int(DefaultTimeout.Seconds()),
			},
			"failOnNonSuccessStatus": map[string]any{
				"type":        "boolean",
				"description": "Report a non-2xx response as a failed step.",
				"default":     true,
			},
			"authType": map[string]any{
				"type":        "string",
				"description": "bearer, basic or apikey. Any other value sends no credentials.",
			},
			"authToken":    map[string]any{"type": "string"},
			"authUsername": map[string]any{"type": "string"},
			"authPassword": map[string]any{"type": "string"},
			"apiKeyHeader": map[string]any{"type": "string", "examples": []string{"X-API-Key"}},
			"apiKeyValue":  map[string]any{"type": "string"},
		},
		"required": []string{"url"},
	}
}
