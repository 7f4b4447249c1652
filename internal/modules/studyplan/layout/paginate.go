// Package layout turns a study plan into positioned text for a paginated
// document. It does no drawing itself; a renderer consumes the commands.
package layout

import (
	"fmt"
	"strconv"
	"time"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

// DrawCommand is one line of text placed on a page. Y is the text baseline.
type DrawCommand struct {
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Bold     bool    `json:"bold"`
}

// LineAdvanceFactor times the font size is the vertical advance of one
// wrapped line. It is not a typographic line height; exported documents have
// always been laid out with it.
const LineAdvanceFactor = 0.3

const (
	titleBlockHeight = 70

	reserveSection = 60
	reserveBlock   = 40
	reserveTopic   = 50
	reservePoint   = 15
	reserveDay     = 60
	reserveSession = 40
)

type Option func(*Paginator)

// WithClock fixes the instant used for the "Generated on" line and day labels.
func WithClock(now func() time.Time) Option {
	return func(p *Paginator) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDayLabel overrides how timetable day headers name a day.
func WithDayLabel(label func(start time.Time, dayIndex int) string) Option {
	return func(p *Paginator) {
		if label != nil {
			p.dayLabel = label
		}
	}
}

// WithBoldMeasure sets the width function for bold centred lines. Without it
// bold text is measured like regular text.
func WithBoldMeasure(measure MeasureFunc) Option {
	return func(p *Paginator) {
		p.measureBold = measure
	}
}

type Paginator struct {
	measure     MeasureFunc
	measureBold MeasureFunc
	now         func() time.Time
	dayLabel    func(start time.Time, dayIndex int) string
}

func New(measure MeasureFunc, opts ...Option) *Paginator {
	if measure == nil {
		measure = ApproxMeasure
	}
	p := &Paginator{measure: measure, now: time.Now, dayLabel: DefaultDayLabel}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FormatDate renders a date the way the exported documents always have
// (M/D/YYYY).
func FormatDate(t time.Time) string { return t.Format("1/2/2006") }

// DefaultDayLabel names day dayIndex counted from start, e.g. "Monday 3/2/2026".
func DefaultDayLabel(start time.Time, dayIndex int) string {
	d := start.AddDate(0, 0, dayIndex)
	return d.Weekday().String() + " " + FormatDate(d)
}

// Paginate lays out the title block and the requested sections. Commands come
// out in paint order with non-decreasing page indices starting at 0.
func (p *Paginator) Paginate(plan types.StudyPlan, geom Geometry, sections Sections) ([]DrawCommand, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	now := p.now()
	d := &document{geom: geom, measure: p.measure, measureBold: p.measureBold}

	c := cursor{page: 0, y: geom.Margin}
	c = d.title(c, plan, now)

	if sections.Has(SectionGuide) {
		c = d.guide(c, plan)
	}
	if sections.Has(SectionTimetable) {
		if sections.Has(SectionGuide) {
			c = d.newPage(c)
		}
		c = d.timetable(c, plan, func(i int) string { return p.dayLabel(now, i) })
	}
	return d.cmds, nil
}

// PageCount is the number of pages the commands span.
func PageCount(cmds []DrawCommand) int {
	if len(cmds) == 0 {
		return 0
	}
	return cmds[len(cmds)-1].Page + 1
}

type cursor struct {
	page int
	y    float64
}

func (c cursor) down(dy float64) cursor { return cursor{page: c.page, y: c.y + dy} }

type document struct {
	geom        Geometry
	measure     MeasureFunc
	measureBold MeasureFunc
	cmds        []DrawCommand
}

func (d *document) newPage(c cursor) cursor {
	return cursor{page: c.page + 1, y: d.geom.Margin}
}

// reserve moves to a fresh page when a block of height h would cross the
// bottom margin.
func (d *document) reserve(c cursor, h float64) cursor {
	if c.y+h > d.geom.Bottom() {
		return d.newPage(c)
	}
	return c
}

func (d *document) text(c cursor, x float64, s string, size float64, bold bool) {
	d.cmds = append(d.cmds, DrawCommand{Page: c.page, X: x, Y: c.y, Text: s, FontSize: size, Bold: bold})
}

func (d *document) centered(c cursor, s string, size float64, bold bool) {
	measure := d.measure
	if bold && d.measureBold != nil {
		measure = d.measureBold
	}
	x := (d.geom.Width - measure(s, size)) / 2
	d.text(c, x, s, size, bold)
}

// wrapped emits s as wrapped lines starting at c and returns the cursor moved
// past the block.
func (d *document) wrapped(c cursor, x, maxWidth float64, s string, size float64) cursor {
	step := size * LineAdvanceFactor
	lines := Wrap(s, maxWidth, size, d.measure)
	for i, line := range lines {
		d.text(c.down(float64(i)*step), x, line, size, false)
	}
	return c.down(float64(len(lines)) * step)
}

func (d *document) title(c cursor, plan types.StudyPlan, now time.Time) cursor {
	d.centered(c.down(20), plan.Subject+" Study Plan", 24, true)
	d.centered(c.down(35), "Generated on: "+FormatDate(now), 14, false)
	d.centered(c.down(50), fmt.Sprintf("Study Period: %d days • %s hours/day", plan.TotalDays, num(plan.HoursPerDay)), 14, false)
	return c.down(titleBlockHeight)
}

func (d *document) guide(c cursor, plan types.StudyPlan) cursor {
	m := d.geom.Margin
	width := d.geom.ContentWidth()

	c = d.reserve(c, reserveSection)
	d.text(c, m, "Study Guide", 18, true)
	c = c.down(20)

	if plan.Overview != "" {
		c = d.reserve(c, reserveBlock)
		d.text(c, m, "Overview:", 14, true)
		c = c.down(10)
		c = d.wrapped(c, m, width, plan.Overview, 11)
		c = c.down(15)
	}

	c = d.reserve(c, reserveBlock)
	d.text(c, m, "Study Topics:", 14, true)
	c = c.down(15)

	for i, topic := range plan.Topics {
		c = d.reserve(c, reserveTopic)
		d.text(c, m, fmt.Sprintf("%d. %s", i+1, topic.Title), 12, true)
		c = c.down(8)

		meta := fmt.Sprintf("Priority: %s • Difficulty: %s • Est. Time: %sh", topic.Priority, topic.Difficulty, num(topic.EstimatedHours))
		d.text(c, m+10, meta, 10, false)
		c = c.down(8)

		c = d.wrapped(c, m+10, width-10, topic.Summary, 10)
		c = c.down(5)

		if len(topic.KeyPoints) > 0 {
			d.text(c, m+10, "Key Points:", 10, true)
			c = c.down(6)
			for _, point := range topic.KeyPoints {
				c = d.reserve(c, reservePoint)
				c = d.wrapped(c, m+15, width-15, "• "+point, 9)
				c = c.down(3)
			}
		}
		c = c.down(10)
	}
	return c
}

func (d *document) timetable(c cursor, plan types.StudyPlan, dayLabel func(int) string) cursor {
	m := d.geom.Margin
	width := d.geom.ContentWidth()

	d.text(c, m, "Study Timetable", 18, true)
	c = c.down(20)

	for i, day := range plan.Timetable {
		c = d.reserve(c, reserveDay)
		d.text(c, m, fmt.Sprintf("Day %d - %s", i+1, dayLabel(i)), 14, true)
		c = c.down(15)

		for _, s := range day.Sessions {
			c = d.reserve(c, reserveSession)
			d.text(c, m+10, fmt.Sprintf("%s (%sh)", s.Topic, num(s.Duration)), 11, true)
			c = c.down(8)

			d.text(c, m+15, "Priority: "+string(s.Priority), 10, false)
			c = c.down(6)

			c = d.wrapped(c, m+15, width-15, s.Description, 9)
			if s.SuggestedTime != "" {
				d.text(c, m+15, "Suggested time: "+s.SuggestedTime, 9, false)
				c = c.down(6)
			}
			c = c.down(8)
		}
		c = c.down(10)
	}
	return c
}

// num prints hours in their shortest form: 2, 2.5, 0.75.
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
