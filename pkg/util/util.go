package util

import (
	"fmt"
	"os"

	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML file and unmarshals it into a struct of type T.
func LoadConfig[T any](filepath string) (*T, error) {
	var config T
	if err := unmarshalFile(filepath, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadConfigOver reads a YAML file over a deep copy of defaults, so keys
// absent from the file keep their default values. defaults is never
// modified.
func LoadConfigOver[T any](filepath string, defaults *T) (*T, error) {
	config, ok := deepcopy.Copy(defaults).(*T)
	if !ok || config == nil {
		return nil, fmt.Errorf("failed to copy defaults of type %T", defaults)
	}
	if err := unmarshalFile(filepath, config); err != nil {
		return nil, err
	}
	return config, nil
}

func unmarshalFile(filepath string, out any) error {
	// 1. Read the file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// 2. Unmarshal the YAML data into the struct
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return nil
}
