package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

var emailFuncs = template.FuncMap{
	"hours": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

var dailyEmailTmpl = template.Must(template.New("daily").Funcs(emailFuncs).Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
      <h2 style="color: #3b82f6; text-align: center;">📚 Daily Study Reminder</h2>
      <p>Hi there!</p>
      <p>It's time for Day {{.DayNumber}} of your <strong>{{.Subject}}</strong> study plan! 🎯</p>
      <h3 style="color: #3b82f6;">Today's Schedule:</h3>
      <div style="background-color: #f8fafc; padding: 15px; border-radius: 8px; margin: 15px 0;">
      {{- range .Day.Sessions}}
        <div style="margin-bottom: 15px; padding: 10px; background-color: white; border-radius: 5px; border-left: 4px solid #3b82f6;">
          <h4 style="margin: 0 0 5px 0; color: #1f2937;">{{.Topic}} ({{hours .Duration}}h)</h4>
          <p style="margin: 0; color: #6b7280; font-size: 14px;">{{.Description}}</p>
          {{- if .SuggestedTime}}
          <p style="margin: 5px 0 0 0; color: #059669; font-size: 12px;">💡 {{.SuggestedTime}}</p>
          {{- end}}
        </div>
      {{- end}}
      </div>
      {{- if .Day.Notes}}
      <div style="background-color: #fef3c7; padding: 10px; border-radius: 5px; margin: 15px 0;"><p style="margin: 0; color: #92400e;"><strong>Daily Tip:</strong> {{.Day.Notes}}</p></div>
      {{- end}}
      <div style="text-align: center; margin-top: 20px;">
        <p style="color: #6b7280; font-size: 14px;">You've got this! Every study session brings you closer to your goals. 💪</p>
      </div>
      <div style="text-align: center; margin-top: 20px; padding-top: 20px; border-top: 1px solid #e5e7eb;">
        <p style="color: #9ca3af; font-size: 12px;">This is an automated reminder from Study Guide Generator.<br>Keep up the great work!</p>
      </div>
    </div>
  </body>
</html>`))

var completionEmailTmpl = template.Must(template.New("completion").Parse(`<html>
  <body style="font-family: Arial, sans-serif; text-align: center; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 40px; border: 1px solid #ddd; border-radius: 10px;">
      <h1 style="color: #10b981; font-size: 36px;">🎉 Congratulations! 🎉</h1>
      <p style="font-size: 18px; margin: 20px 0;">You've completed your <strong>{{.Subject}}</strong> study plan!</p>
      <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px; margin: 20px 0;">
        <h2 style="margin: 0;">Mission Accomplished! 🚀</h2>
        <p style="margin: 10px 0 0 0;">You've shown dedication and consistency. That's the mark of a true learner!</p>
      </div>
      <p style="color: #6b7280;">Keep practicing what you've learned and consider your next learning adventure!</p>
    </div>
  </body>
</html>`))

func renderDailyEmail(subject string, dayNumber int, day types.Day) (string, error) {
	var buf bytes.Buffer
	err := dailyEmailTmpl.Execute(&buf, struct {
		Subject   string
		DayNumber int
		Day       types.Day
	}{subject, dayNumber, day})
	return buf.String(), err
}

func renderCompletionEmail(subject string) (string, error) {
	var buf bytes.Buffer
	err := completionEmailTmpl.Execute(&buf, struct{ Subject string }{subject})
	return buf.String(), err
}

func dailyEmailText(subject string, dayNumber int, day types.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "It's time for Day %d of your %s study plan!\n\nToday's schedule:\n", dayNumber, subject)
	for _, s := range day.Sessions {
		fmt.Fprintf(&b, "- %s (%sh): %s\n", s.Topic, strconv.FormatFloat(s.Duration, 'f', -1, 64), s.Description)
	}
	if day.Notes != "" {
		fmt.Fprintf(&b, "\nDaily tip: %s\n", day.Notes)
	}
	return b.String()
}
