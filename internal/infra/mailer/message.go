package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ToName  string `json:"to_name,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var bodyTemplate = template.Must(template.New("reminder").Parse(`Hello{{if .Name}} {{.Name}}{{end}},

this is a reminder for "{{.Title}}".

Date:     {{.Date}}
Time:     {{.Time}} ({{.Zone}})
{{- if .Location}}
Location: {{.Location}}
{{- end}}

{{if eq .LeadDays 0}}The event takes place today.{{else if eq .LeadDays 1}}The event takes place tomorrow.{{else}}The event takes place in {{.LeadDays}} days.{{end}}
`))

type bodyData struct {
	Name     string
	Title    string
	Date     string
	Time     string
	Zone     string
	Location string
	LeadDays int
}

// Compose renders the reminder email for one user and event. The event's
// wall-clock start is shown in loc together with the zone abbreviation in
// effect on that day.
func Compose(from string, user domain.ReminderPreference, event domain.CandidateEvent, loc *time.Location) (Message, error) {
	if user.Email == "" {
		return Message{}, ErrRecipientMissing
	}
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(event.StartDate.Year, event.StartDate.Month, event.StartDate.Day,
		event.StartTime.Hour, event.StartTime.Minute, event.StartTime.Second, 0, loc)
	zone, _ := start.Zone()

	title := event.Title
	if title == "" {
		title = "Event"
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, bodyData{
		Name:     user.Name,
		Title:    title,
		Date:     event.StartDate.String(),
		Time:     fmt.Sprintf("%02d:%02d", event.StartTime.Hour, event.StartTime.Minute),
		Zone:     zone,
		Location: event.Location,
		LeadDays: user.LeadDays,
	}); err != nil {
		return Message{}, fmt.Errorf("failed to render reminder body: %w", err)
	}

	return Message{
		From:    from,
		To:      user.Email,
		ToName:  user.Name,
		Subject: fmt.Sprintf("Reminder: %s on %s", title, event.StartDate.String()),
		Body:    body.String(),
	}, nil
}
