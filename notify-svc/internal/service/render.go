package service

import (
	"fmt"
	"strings"
	"text/template"

	"meal-together/notify-svc/internal/domain"
)

var bodies = map[domain.Kind]*template.Template{
	domain.KindInvitation: template.Must(template.New("invitation").Parse(
		`You've been invited to join "{{.SessionName}}".

Place your order before the deadline:
{{.Link}}
`)),
	domain.KindSessionUpdate: template.Must(template.New("session_update").Parse(
		`The session "{{.SessionName}}" has been updated:
{{range .Changes}}
  - {{.}}{{end}}

See the session: {{.Link}}
`)),
	domain.KindOrderUpdate: template.Must(template.New("order_update").Parse(
		`Your order in "{{.SessionName}}" was changed by the session creator:
{{range .Changes}}
  - {{.}}{{end}}

Review your order: {{.Link}}
`)),
	domain.KindOrderCancelled: template.Must(template.New("order_cancelled").Parse(
		`Your order in "{{.SessionName}}" was cancelled by the session creator.
{{range .Changes}}
  - {{.}}{{end}}

See the session: {{.Link}}
`)),
	domain.KindDeadlinePassed: template.Must(template.New("deadline_passed").Parse(
		`The order deadline for "{{.SessionName}}" has passed.

The order summary is ready: {{.Link}}/summary
`)),
}

// Render builds the e-mail for n. Unknown kinds are an error.
func Render(n domain.Notification) (domain.Email, error) {
	tmpl, ok := bodies[n.Kind]
	if !ok {
		return domain.Email{}, fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	var body strings.Builder
	if err := tmpl.Execute(&body, n); err != nil {
		return domain.Email{}, fmt.Errorf("render %s: %w", n.Kind, err)
	}

	return domain.Email{
		To:      n.Recipients,
		Subject: n.Subject,
		Body:    body.String(),
	}, nil
}
