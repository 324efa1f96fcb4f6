package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadInputs reads a calculator input record from a YAML or JSON file. A
// path of "-" reads from stdin. Keys keep their case so they match the
// calculators' field names.
func LoadInputs(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return ParseInputs(data)
}

// ParseInputs decodes a YAML or JSON input record.
func ParseInputs(data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse inputs: %w", err)
	}
	return raw, nil
}
