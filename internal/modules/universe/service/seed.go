package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// loadSeed читает статичный список символов для холодного старта.
func loadSeed(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	var doc struct {
		Symbols []string `yaml:"symbols"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return doc.Symbols, nil
}
