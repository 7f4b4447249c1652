package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/generator"
)

const yamlPlan = `subject: Statistics
hoursPerDay: 2
totalDays: 2
topics:
  - {title: Mean, summary: s, priority: HIGH, difficulty: easy, estimatedHours: 1}
  - {title: Median, summary: s, priority: high, difficulty: easy, estimatedHours: 1}
  - {title: Variance, summary: s, priority: medium, difficulty: medium, estimatedHours: 1}
  - {title: Regression, summary: s, priority: low, difficulty: hard, estimatedHours: 1}
  - {title: Sampling, summary: s, priority: whatever, difficulty: medium, estimatedHours: 1}
timetable:
  - sessions:
      - {topic: Mean, duration: 1, priority: high, description: d}
      - {topic: Median, duration: 1, priority: high, description: d}
  - sessions:
      - {topic: Variance, duration: 2.5, priority: medium, description: d}
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeYAMLPlan(t *testing.T) {
	plan, err := decodePlan([]byte(yamlPlan), ".yml")
	if err != nil {
		t.Fatalf("decodePlan: %v", err)
	}
	if plan.Subject != "Statistics" || len(plan.Topics) != 5 || len(plan.Timetable) != 2 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if plan.Topics[0].Priority != types.PriorityHigh || plan.Topics[4].Priority != types.PriorityMedium {
		t.Fatalf("priorities not normalised: %v %v", plan.Topics[0].Priority, plan.Topics[4].Priority)
	}
	if _, err := decodePlan([]byte("x"), ".toml"); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeFile(t, "plan.yaml", yamlPlan)

	out, err := run(t, "validate", "--plan", path)
	if err == nil || !strings.Contains(out, "daily_hours_exceeded") {
		t.Fatalf("expected rejection, got %q err=%v", out, err)
	}

	out, err = run(t, "validate", "--plan", path, "--hours", "3")
	if err != nil || !strings.HasPrefix(out, "accepted") {
		t.Fatalf("expected acceptance, got %q err=%v", out, err)
	}

	out, err = run(t, "validate", "--plan", path, "--subject", " ", "--hours", "3")
	if err == nil || !strings.Contains(out, "empty_subject") {
		t.Fatalf("expected empty subject, got %q", out)
	}
}

func TestLayoutAndExportCommands(t *testing.T) {
	plan, err := generator.New(nil).Generate(context.Background(), types.StudyRequest{Subject: "Music Theory", HoursPerDay: 2, TotalDays: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw, _ := json.Marshal(plan)
	path := writeFile(t, "plan.json", string(raw))

	out, err := run(t, "layout", "--plan", path, "--type", "guide")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var res struct {
		Pages    int               `json:"pages"`
		Commands []json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode layout output: %v", err)
	}
	if res.Pages < 1 || len(res.Commands) == 0 {
		t.Fatalf("unexpected layout: %+v", res)
	}

	dir := t.TempDir()
	out, err = run(t, "export", "--plan", path, "--format", "png", "--out", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "music_theory_study_both_*.png"))
	if len(matches) != 1 || !strings.HasPrefix(out, "wrote ") {
		t.Fatalf("export output %q, files %v", out, matches)
	}

	if _, err := run(t, "export", "--plan", path, "--page-width", "30", "--margin", "20", "--out", dir); err == nil {
		t.Fatalf("expected geometry error")
	}
	if _, err := run(t, "layout", "--plan", path, "--page-width", "NaN"); err == nil {
		t.Fatalf("expected NaN page width to be rejected")
	}
}
