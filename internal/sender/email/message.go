package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/berez23/io-functions/internal/events"
)

// buildTextBody renders the plain text email body: the markdown source
// preceded by a sender attribution line.
func buildTextBody(ev *events.NotificationEvent) string {
	var b strings.Builder
	if name := senderLine(ev.SenderMetadata); name != "" {
		b.WriteString(name)
		b.WriteString("\n\n")
	}
	b.WriteString(ev.Message.Content.Markdown)
	return b.String()
}

// buildHTMLBody renders a minimal HTML version of the message body.
// Paragraphs are split on blank lines; no markdown constructs beyond that
// are interpreted.
func buildHTMLBody(ev *events.NotificationEvent) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if name := senderLine(ev.SenderMetadata); name != "" {
		b.WriteString(fmt.Sprintf("<p><strong>%s</strong></p>", html.EscapeString(name)))
	}
	for _, paragraph := range strings.Split(ev.Message.Content.Markdown, "\n\n") {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(trimmed), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

// senderLine formats the sending organization for display, e.g.
// "AgID - Servizio Notifiche".
func senderLine(meta events.SenderMetadata) string {
	parts := make([]string, 0, 2)
	if meta.OrganizationName != "" {
		parts = append(parts, meta.OrganizationName)
	}
	if meta.ServiceName != "" {
		parts = append(parts, meta.ServiceName)
	}
	return strings.Join(parts, " - ")
}
