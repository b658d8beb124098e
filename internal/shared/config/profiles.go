package config

import (
	"fmt"
	"os"
	"strings"

	"cvscore-backend/internal/ats"
)

// LoadProfiles returns the built-in scoring profiles, overlaid with the YAML
// file at path when one is given.
func LoadProfiles(path string) (*ats.ProfileSet, error) {
	if strings.TrimSpace(path) == "" {
		return ats.DefaultProfiles(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer f.Close()
	set, err := ats.LoadProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", path, err)
	}
	return set, nil
}
