package traffic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// trafficFile is the bit-exact on-disk shape.
type trafficFile struct {
	Building Building `json:"building"`
	Traffic  []Entry  `json:"traffic"`
}

// LoadFile reads a single traffic scenario from a JSON file.
func LoadFile(path string) (*Pattern, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read traffic file: %w", err)
	}
	var file trafficFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse traffic file %s: %w", path, err)
	}

	name := file.Building.Scenario
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	pattern, err := NewPattern(name, file.Building, file.Traffic)
	if err != nil {
		return nil, fmt.Errorf("invalid traffic file %s: %w", path, err)
	}
	pattern.Metadata["path"] = path
	return pattern, nil
}

// LoadFiles reads every listed scenario, preserving list order.
func LoadFiles(paths []string) (*Source, error) {
	patterns := make([]*Pattern, 0, len(paths))
	for _, path := range paths {
		pattern, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}
	return NewSource(patterns)
}
