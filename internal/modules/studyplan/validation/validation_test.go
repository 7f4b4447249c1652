package validation

import (
	"errors"
	"fmt"
	"testing"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

func topics(n int) []types.Topic {
	out := make([]types.Topic, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.Topic{
			Title:          fmt.Sprintf("Topic %d", i+1),
			Summary:        "Summary",
			Priority:       types.PriorityHigh,
			Difficulty:     types.DifficultyEasy,
			EstimatedHours: 1,
		})
	}
	return out
}

func day(durations ...float64) types.Day {
	d := types.Day{}
	for _, h := range durations {
		d.Sessions = append(d.Sessions, types.Session{Topic: "Topic 1", Duration: h, Priority: types.PriorityHigh, Description: "Test"})
	}
	return d
}

func TestValidate(t *testing.T) {
	valid := Input{Subject: "JavaScript Fundamentals", HoursPerDay: 2, TotalDays: 7}

	cases := []struct {
		name string
		in   Input
		plan types.StudyPlan
		want Verdict
	}{
		{
			name: "accepted at budget",
			in:   valid,
			plan: types.StudyPlan{Topics: topics(5), Timetable: []types.Day{day(2)}},
			want: Verdict{Accepted: true},
		},
		{
			name: "day over budget",
			in:   valid,
			plan: types.StudyPlan{Topics: topics(5), Timetable: []types.Day{day(3)}},
			want: Verdict{Reason: DailyHoursExceeded},
		},
		{
			name: "sessions summed per day",
			in:   valid,
			plan: types.StudyPlan{Topics: topics(6), Timetable: []types.Day{day(1, 0.5), day(1, 1.5)}},
			want: Verdict{Reason: DailyHoursExceeded},
		},
		{
			name: "budget lowered to one hour",
			in:   Input{Subject: "X", HoursPerDay: 1, TotalDays: 1},
			plan: types.StudyPlan{Topics: topics(5), Timetable: []types.Day{day(2)}},
			want: Verdict{Reason: DailyHoursExceeded},
		},
		{
			name: "empty timetable passes hour check",
			in:   valid,
			plan: types.StudyPlan{Topics: topics(5)},
			want: Verdict{Accepted: true},
		},
		{
			name: "too few topics wins over hours",
			in:   valid,
			plan: types.StudyPlan{Topics: topics(4), Timetable: []types.Day{day(9)}},
			want: Verdict{Reason: TooFewTopics},
		},
		{
			name: "blank subject",
			in:   Input{Subject: "   ", HoursPerDay: 2},
			plan: types.StudyPlan{Topics: topics(5)},
			want: Verdict{Reason: EmptySubject},
		},
		{
			name: "empty subject checked before hours",
			in:   Input{Subject: "", HoursPerDay: 0},
			plan: types.StudyPlan{},
			want: Verdict{Reason: EmptySubject},
		},
		{
			name: "zero hours",
			in:   Input{Subject: "Go", HoursPerDay: 0},
			plan: types.StudyPlan{Topics: topics(5)},
			want: Verdict{Reason: InvalidHours},
		},
		{
			name: "negative hours",
			in:   Input{Subject: "Go", HoursPerDay: -3},
			plan: types.StudyPlan{},
			want: Verdict{Reason: InvalidHours},
		},
		{
			name: "twelve hours allowed",
			in:   Input{Subject: "Go", HoursPerDay: 12},
			plan: types.StudyPlan{Topics: topics(5), Timetable: []types.Day{day(12)}},
			want: Verdict{Accepted: true},
		},
		{
			name: "over twelve hours",
			in:   Input{Subject: "Go", HoursPerDay: 12.5},
			plan: types.StudyPlan{Topics: topics(5)},
			want: Verdict{Reason: HoursTooHigh},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.in, tc.plan)
			if got != tc.want {
				t.Fatalf("Validate: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestValidateTooFewTopicsRegardlessOfHours(t *testing.T) {
	in := Input{Subject: "Go", HoursPerDay: 4}
	for n := 0; n < MinTopics; n++ {
		for _, tt := range [][]types.Day{nil, {day(1)}, {day(10)}} {
			got := Validate(in, types.StudyPlan{Topics: topics(n), Timetable: tt})
			if got.Accepted || got.Reason != TooFewTopics {
				t.Fatalf("topics=%d: got=%s want=rejected(too_few_topics)", n, got)
			}
		}
	}
}

func TestValidateInputMatchesValidate(t *testing.T) {
	inputs := []Input{
		{Subject: "", HoursPerDay: 3},
		{Subject: "Go", HoursPerDay: 0},
		{Subject: "Go", HoursPerDay: 13},
		{Subject: "Go", HoursPerDay: 3},
	}
	plan := types.StudyPlan{Topics: topics(5)}
	for _, in := range inputs {
		pre := ValidateInput(in)
		full := Validate(in, plan)
		if pre != full {
			t.Fatalf("input %+v: ValidateInput=%s Validate=%s", in, pre, full)
		}
	}
}

func TestVerdictErr(t *testing.T) {
	if err := (Verdict{Accepted: true}).Err(); err != nil {
		t.Fatalf("accepted verdict returned error: %v", err)
	}
	err := Validate(Input{Subject: "Go", HoursPerDay: 2}, types.StudyPlan{Topics: topics(2)}).Err()
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %T", err)
	}
	if rej.Reason != TooFewTopics {
		t.Fatalf("unexpected reason: %s", rej.Reason)
	}
	if got := err.Error(); got != "Generated study guide should have at least 5 topics" {
		t.Fatalf("unexpected message: %q", got)
	}
	if rej.Reason.InputError() {
		t.Fatalf("too_few_topics should not be an input error")
	}
	if !EmptySubject.InputError() {
		t.Fatalf("empty_subject should be an input error")
	}
}

func TestMaxDailyHours(t *testing.T) {
	if got := MaxDailyHours(nil); got != 0 {
		t.Fatalf("empty timetable: got=%v", got)
	}
	got := MaxDailyHours([]types.Day{day(1, 1), day(0.5), day(2, 0.5)})
	if got != 2.5 {
		t.Fatalf("MaxDailyHours: got=%v want=2.5", got)
	}
}
