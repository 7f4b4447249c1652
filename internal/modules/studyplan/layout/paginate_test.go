package layout

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

var fixedNow = time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)

func newTestPaginator() *Paginator {
	return New(ApproxMeasure, WithClock(func() time.Time { return fixedNow }))
}

func samplePlan(topicCount, dayCount int) types.StudyPlan {
	plan := types.StudyPlan{
		Subject:     "JavaScript Fundamentals",
		HoursPerDay: 2,
		TotalDays:   dayCount,
		Overview:    "This is a comprehensive JavaScript study plan that moves from the basics to practical DOM work.",
	}
	for i := 0; i < topicCount; i++ {
		plan.Topics = append(plan.Topics, types.Topic{
			Title:          fmt.Sprintf("Topic %d", i+1),
			Summary:        "Learn about the topic in enough depth to apply it in small projects and exercises.",
			Priority:       types.PriorityHigh,
			Difficulty:     types.DifficultyMedium,
			EstimatedHours: 2.5,
			KeyPoints:      []string{"first point", "second point"},
		})
	}
	for i := 0; i < dayCount; i++ {
		plan.Timetable = append(plan.Timetable, types.Day{
			Sessions: []types.Session{{
				Topic:         fmt.Sprintf("Topic %d", i+1),
				Duration:      2,
				Priority:      types.PriorityHigh,
				Description:   "Study the topic: read, take notes, practice.",
				SuggestedTime: "9:00 AM - 11:00 AM",
			}},
			Notes: "First day! Start strong.",
		})
	}
	return plan
}

func find(t *testing.T, cmds []DrawCommand, text string) DrawCommand {
	t.Helper()
	for _, c := range cmds {
		if c.Text == text {
			return c
		}
	}
	t.Fatalf("no command with text %q", text)
	return DrawCommand{}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPaginateInvalidGeometry(t *testing.T) {
	for _, g := range []Geometry{
		{Width: 50, Height: 50, Margin: 30},
		{Width: 40, Height: 297, Margin: 20},
		{Width: 210, Height: 40, Margin: 20},
		{Width: math.NaN(), Height: 297, Margin: 20},
		{Width: 210, Height: math.Inf(1), Margin: 20},
		{Width: 210, Height: 297, Margin: math.NaN()},
	} {
		_, err := newTestPaginator().Paginate(samplePlan(5, 1), g, SectionBoth)
		var geomErr *InvalidGeometryError
		if !errors.As(err, &geomErr) {
			t.Fatalf("geometry %+v: expected InvalidGeometryError, got %v", g, err)
		}
	}
}

func TestPaginateTitleBlock(t *testing.T) {
	cmds, err := newTestPaginator().Paginate(samplePlan(5, 1), A4, SectionGuide)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(cmds) < 3 {
		t.Fatalf("expected title block, got %d commands", len(cmds))
	}
	want := []struct {
		text string
		y    float64
		size float64
		bold bool
	}{
		{"JavaScript Fundamentals Study Plan", 40, 24, true},
		{"Generated on: 10/17/2026", 55, 14, false},
		{"Study Period: 1 days • 2 hours/day", 70, 14, false},
	}
	for i, w := range want {
		c := cmds[i]
		if c.Text != w.text || c.Y != w.y || c.FontSize != w.size || c.Bold != w.bold || c.Page != 0 {
			t.Fatalf("title line %d: got=%+v want=%+v", i, c, w)
		}
		centre := c.X + ApproxMeasure(c.Text, c.FontSize)/2
		if !near(centre, A4.Width/2) {
			t.Fatalf("title line %d not centred: centre=%v", i, centre)
		}
	}
	header := cmds[3]
	if header.Text != "Study Guide" || header.Y != 90 || header.X != A4.Margin {
		t.Fatalf("section header should follow the 70 unit title block: %+v", header)
	}
}

func TestPaginateCentresBoldWithBoldMeasure(t *testing.T) {
	wide := func(text string, size float64) float64 { return 2 * ApproxMeasure(text, size) }
	p := New(ApproxMeasure, WithBoldMeasure(wide), WithClock(func() time.Time { return fixedNow }))
	cmds, err := p.Paginate(samplePlan(1, 1), A4, SectionGuide)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	heading := find(t, cmds, "JavaScript Fundamentals Study Plan")
	if centre := heading.X + wide(heading.Text, heading.FontSize)/2; !near(centre, A4.Width/2) {
		t.Fatalf("bold heading centred with wrong width: centre=%v", centre)
	}
	generated := find(t, cmds, "Generated on: 10/17/2026")
	if centre := generated.X + ApproxMeasure(generated.Text, generated.FontSize)/2; !near(centre, A4.Width/2) {
		t.Fatalf("regular line should keep the regular measure: centre=%v", centre)
	}
}

func TestPaginateGuideBlocks(t *testing.T) {
	plan := types.StudyPlan{
		Subject:     "Go",
		HoursPerDay: 2,
		TotalDays:   1,
		Topics: []types.Topic{{
			Title:          "Basics",
			Summary:        "Learn it",
			Priority:       types.PriorityHigh,
			Difficulty:     types.DifficultyEasy,
			EstimatedHours: 2,
			KeyPoints:      []string{"a"},
		}},
	}
	cmds, err := newTestPaginator().Paginate(plan, A4, SectionGuide)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}

	checks := []DrawCommand{
		{Page: 0, X: 20, Y: 90, Text: "Study Guide", FontSize: 18, Bold: true},
		{Page: 0, X: 20, Y: 110, Text: "Study Topics:", FontSize: 14, Bold: true},
		{Page: 0, X: 20, Y: 125, Text: "1. Basics", FontSize: 12, Bold: true},
		{Page: 0, X: 30, Y: 133, Text: "Priority: high • Difficulty: easy • Est. Time: 2h", FontSize: 10},
		{Page: 0, X: 30, Y: 141, Text: "Learn it", FontSize: 10},
		{Page: 0, X: 30, Y: 149, Text: "Key Points:", FontSize: 10, Bold: true},
		{Page: 0, X: 35, Y: 155, Text: "• a", FontSize: 9},
	}
	for _, want := range checks {
		got := find(t, cmds, want.Text)
		if got.Page != want.Page || !near(got.X, want.X) || !near(got.Y, want.Y) || got.FontSize != want.FontSize || got.Bold != want.Bold {
			t.Fatalf("command %q: got=%+v want=%+v", want.Text, got, want)
		}
	}
	for _, c := range cmds {
		if strings.HasPrefix(c.Text, "Overview") {
			t.Fatalf("overview emitted for plan without one")
		}
	}
}

func TestPaginateSkipsMissingOptionalFields(t *testing.T) {
	plan := samplePlan(5, 2)
	for i := range plan.Topics {
		plan.Topics[i].KeyPoints = nil
	}
	plan.Timetable[0].Sessions[0].SuggestedTime = ""
	cmds, err := newTestPaginator().Paginate(plan, A4, SectionBoth)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	suggested := 0
	for _, c := range cmds {
		if c.Text == "Key Points:" {
			t.Fatalf("key points label emitted without key points")
		}
		if strings.HasPrefix(c.Text, "Suggested time:") {
			suggested++
		}
		if strings.Contains(c.Text, "Start strong") {
			t.Fatalf("day notes are not part of the document")
		}
	}
	if suggested != 1 {
		t.Fatalf("expected one suggested-time line, got %d", suggested)
	}
}

func TestPaginateForcedBreakBetweenSections(t *testing.T) {
	p := newTestPaginator()

	both, err := p.Paginate(samplePlan(5, 2), A4, SectionBoth)
	if err != nil {
		t.Fatalf("Paginate both: %v", err)
	}
	header := find(t, both, "Study Timetable")
	lastGuidePage := 0
	for _, c := range both {
		if c.Text == "Study Timetable" {
			break
		}
		lastGuidePage = c.Page
	}
	if header.Page != lastGuidePage+1 || header.Y != A4.Margin {
		t.Fatalf("timetable should start a fresh page: header=%+v last guide page=%d", header, lastGuidePage)
	}

	only, err := p.Paginate(samplePlan(5, 2), A4, SectionTimetable)
	if err != nil {
		t.Fatalf("Paginate timetable: %v", err)
	}
	header = find(t, only, "Study Timetable")
	if header.Page != 0 || header.Y != 90 {
		t.Fatalf("timetable alone should follow the title block: %+v", header)
	}
	day := find(t, only, "Day 1 - Saturday 10/17/2026")
	if day.Y != 110 || !day.Bold {
		t.Fatalf("unexpected day header: %+v", day)
	}
	find(t, only, "Day 2 - Sunday 10/18/2026")
	find(t, only, "Topic 1 (2h)")
	find(t, only, "Priority: high")
	find(t, only, "Suggested time: 9:00 AM - 11:00 AM")
}

func TestPaginatePageBreaks(t *testing.T) {
	g := Geometry{Width: 210, Height: 200, Margin: 20}
	cmds, err := newTestPaginator().Paginate(samplePlan(12, 10), g, SectionBoth)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if cmds[0].Page != 0 {
		t.Fatalf("first page index should be 0, got %d", cmds[0].Page)
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i].Page < cmds[i-1].Page {
			t.Fatalf("page index decreased at %d: %d -> %d", i, cmds[i-1].Page, cmds[i].Page)
		}
		if cmds[i].Page > cmds[i-1].Page+1 {
			t.Fatalf("page skipped at %d: %d -> %d", i, cmds[i-1].Page, cmds[i].Page)
		}
	}
	if PageCount(cmds) < 3 {
		t.Fatalf("expected several pages, got %d", PageCount(cmds))
	}
	for _, c := range cmds {
		if c.Bold && c.FontSize == 12 && c.Y+reserveTopic > g.Bottom() {
			t.Fatalf("topic header %q placed without room for its block: y=%v", c.Text, c.Y)
		}
		if c.Bold && c.FontSize == 11 && c.Y+reserveSession > g.Bottom() {
			t.Fatalf("session header %q placed without room for its block: y=%v", c.Text, c.Y)
		}
	}
}

func TestPaginateDeterministic(t *testing.T) {
	p := newTestPaginator()
	plan := samplePlan(7, 5)
	a, err := p.Paginate(plan, A4, SectionBoth)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	b, err := p.Paginate(plan, A4, SectionBoth)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different layouts")
	}
}

func TestPaginateKeepsTopicOrder(t *testing.T) {
	plan := samplePlan(5, 0)
	plan.Topics[0].Priority = types.PriorityLow
	plan.Topics[4].Priority = types.PriorityHigh
	cmds, err := newTestPaginator().Paginate(plan, A4, SectionGuide)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	n := 0
	for _, c := range cmds {
		if c.FontSize == 12 && c.Bold {
			n++
			if want := fmt.Sprintf("%d. Topic %d", n, n); c.Text != want {
				t.Fatalf("topic %d: got=%q want=%q", n, c.Text, want)
			}
		}
	}
	if n != 5 {
		t.Fatalf("expected 5 topic headers, got %d", n)
	}
}

func TestPaginateCustomDayLabel(t *testing.T) {
	p := New(ApproxMeasure,
		WithClock(func() time.Time { return fixedNow }),
		WithDayLabel(func(_ time.Time, i int) string { return fmt.Sprintf("D%d", i) }),
	)
	cmds, err := p.Paginate(samplePlan(5, 1), A4, SectionTimetable)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	find(t, cmds, "Day 1 - D0")
}

func TestParseSections(t *testing.T) {
	cases := map[string]Sections{"": SectionBoth, "both": SectionBoth, "Guide": SectionGuide, "timetable": SectionTimetable}
	for raw, want := range cases {
		got, err := ParseSections(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSections(%q): got=%v err=%v want=%v", raw, got, err, want)
		}
	}
	if _, err := ParseSections("pdf"); err == nil {
		t.Fatalf("expected error for unknown section set")
	}
}
