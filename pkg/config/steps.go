// Package config provides loading for step definition files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoSteps           = errors.New("no steps defined")
	ErrMissingActionType = errors.New("actionType is required")
)

// StepsFile is a step definition document with a top-level steps key.
type StepsFile struct {
	Steps []StepConfigFile `yaml:"steps"`
}

// StepConfigFile represents a step in the definition file. The configuration
// may be written inline as a mapping or as a JSON string.
type StepConfigFile struct {
	Name          string `yaml:"name"`
	ActionType    string `yaml:"actionType"`
	Configuration any    `yaml:"actionConfiguration"`
}

// StepConfig is a step with its configuration rendered as raw JSON.
type StepConfig struct {
	Name                string
	ActionType          string
	ActionConfiguration string
}

// LoadSteps reads step definitions from a YAML or JSON file. The file holds
// either a list of steps or a document with a steps key.
func LoadSteps(filepath string) ([]StepConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read steps file %s: %w", filepath, err)
	}

	return ParseSteps(data)
}

// ParseSteps decodes step definitions and names unnamed steps by position.
func ParseSteps(data []byte) ([]StepConfig, error) {
	var files []StepConfigFile
	if err := yaml.Unmarshal(data, &files); err != nil {
		var document StepsFile
		if docErr := yaml.Unmarshal(data, &document); docErr != nil {
			return nil, fmt.Errorf("failed to parse steps file: %w", err)
		}

		files = document.Steps
	}

	if len(files) == 0 {
		return nil, ErrNoSteps
	}

	steps := make([]StepConfig, len(files))

	for i, file := range files {
		name := strings.TrimSpace(file.Name)
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}

		if strings.TrimSpace(file.ActionType) == "" {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingActionType)
		}

		configuration, err := renderConfiguration(file.Configuration)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		steps[i] = StepConfig{
			Name:                name,
			ActionType:          file.ActionType,
			ActionConfiguration: configuration,
		}
	}

	return steps, nil
}

func renderConfiguration(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("actionConfiguration cannot be rendered as JSON: %w", err)
		}

		return string(raw), nil
	}
}
