package templates

import (
	"io"
	"text/template"
)

var plainText = template.Must(template.New("notification.txt").Parse(`New Contact — {{.Brand}}

Name: {{.Name}}
Email: {{.Email}}
Phone: {{if .Phone}}{{.Phone}}{{else}}Not provided{{end}}
Service: {{.ServiceLabel}}

Message:
{{.Message}}

—
Submitted: {{.SubmittedAt}}
IP: {{.ClientIP}}

Reply: mailto:{{.Email}}
`))

// PlainText writes the text/plain alternative of the notification.
func PlainText(w io.Writer, p NotificationParams) error {
	return plainText.Execute(w, p)
}
