package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

// loadPlan reads a plan from a .json, .yaml or .yml file.
func loadPlan(path string) (types.StudyPlan, error) {
	var plan types.StudyPlan
	if strings.TrimSpace(path) == "" {
		return plan, fmt.Errorf("--plan is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("read plan: %w", err)
	}
	return decodePlan(raw, filepath.Ext(path))
}

func decodePlan(raw []byte, ext string) (types.StudyPlan, error) {
	var plan types.StudyPlan
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &plan); err != nil {
			return plan, fmt.Errorf("decode yaml plan: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(raw, &plan); err != nil {
			return plan, fmt.Errorf("decode json plan: %w", err)
		}
	default:
		return plan, fmt.Errorf("unsupported plan file extension %q", ext)
	}
	return plan, nil
}
